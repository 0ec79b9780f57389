// internal/app/store/subjects/subjectstore.go
package subjectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/normalize"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateCode is returned when a subject with the same code (ignoring
// case) already exists.
var ErrDuplicateCode = errors.New("a subject with this code already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subjects")}
}

// Create inserts a subject. Name and department are trimmed, the code is
// upper-cased. Field rules (required, lengths, known department) are the
// caller's job; the store only enforces code uniqueness.
func (s *Store) Create(ctx context.Context, sub models.Subject) (models.Subject, error) {
	now := time.Now().UTC()
	sub.ID = primitive.NewObjectID()
	sub.Name = normalize.Name(sub.Name)
	sub.NameCI = text.Fold(sub.Name)
	sub.Code = normalize.Code(sub.Code)
	sub.CodeCI = text.Fold(sub.Code)
	sub.Department = normalize.Name(sub.Department)
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subject{}, ErrDuplicateCode
		}
		return models.Subject{}, err
	}
	return sub, nil
}

// List returns up to pageSize subjects ordered by name. A pageSize of zero
// or less means no limit.
func (s *Store) List(ctx context.Context, pageSize int) ([]models.Subject, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	if pageSize > 0 {
		opts.SetLimit(int64(pageSize))
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subs := []models.Subject{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Count returns the number of subjects matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
