package metricsstore

import (
	"context"

	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Counts holds collection totals. The dashboard lists are capped at a
// page size, so these tell the view whether a list was truncated.
type Counts struct {
	Users       int64 `json:"users"`
	Students    int64 `json:"students"`
	Teachers    int64 `json:"teachers"`
	Admins      int64 `json:"admins"`
	Departments int64 `json:"departments"`
	Subjects    int64 `json:"subjects"`
	Classes     int64 `json:"classes"`
}

// FetchCounts returns the totals used by the dashboard.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	count := func(coll string, filter bson.M, dst *int64) func() error {
		return func() error {
			if n, err := db.Collection(coll).CountDocuments(ctx, filter); err == nil {
				*dst = n
			}
			return nil
		}
	}

	var g errgroup.Group
	g.Go(count("users", bson.M{}, &out.Users))
	g.Go(count("users", bson.M{"role": models.RoleStudent}, &out.Students))
	g.Go(count("users", bson.M{"role": models.RoleTeacher}, &out.Teachers))
	g.Go(count("users", bson.M{"role": models.RoleAdmin}, &out.Admins))
	g.Go(count("departments", bson.M{}, &out.Departments))
	g.Go(count("subjects", bson.M{}, &out.Subjects))
	g.Go(count("classes", bson.M{}, &out.Classes))
	_ = g.Wait()

	return out
}
