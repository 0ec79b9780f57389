// internal/app/store/classes/classstore.go
package classstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/schooldesk/internal/app/system/normalize"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	errNameNeeded  = errors.New("class name is required")
	errBadCapacity = errors.New("capacity must not be negative")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classes")}
}

// Create inserts a class. Capacity and Department stay unset when nil.
func (s *Store) Create(ctx context.Context, c models.Class) (models.Class, error) {
	c.Name = normalize.Name(c.Name)
	if c.Name == "" {
		return models.Class{}, errNameNeeded
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		return models.Class{}, errBadCapacity
	}
	if c.Department != nil {
		c.Department.Name = normalize.Name(c.Department.Name)
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.NameCI = text.Fold(c.Name)
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Class{}, err
	}
	return c, nil
}

// List returns up to pageSize classes ordered by name. A pageSize of zero
// or less means no limit.
func (s *Store) List(ctx context.Context, pageSize int) ([]models.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	if pageSize > 0 {
		opts.SetLimit(int64(pageSize))
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	classes := []models.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Count returns the number of classes matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
