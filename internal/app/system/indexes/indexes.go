// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureDepartments(ctx, db); err != nil {
		problems = append(problems, "departments: "+err.Error())
	}
	if err := ensureSubjects(ctx, db); err != nil {
		problems = append(problems, "subjects: "+err.Error())
	}
	if err := ensureClasses(ctx, db); err != nil {
		problems = append(problems, "classes: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func isTrue(b *bool) bool { return b != nil && *b }

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// listIndexes returns the collection's indexes keyed by key signature.
func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// desired describes one wanted index.
type desired struct {
	model  mongo.IndexModel
	name   string
	unique bool
	sig    string
}

func describe(m mongo.IndexModel) desired {
	d := desired{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = isTrue(m.Options.Unique)
	}
	return d
}

// ensureIndexSet makes the collection carry every index in models:
//   - same keys and options under the desired name: reused;
//   - same keys and options under another name: dropped and recreated with the name;
//   - same keys, different uniqueness: dropped and recreated;
//   - missing: created.
//
// Every index is attempted; failures are joined into one error.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A missing collection lists nothing; creation below still works.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		d := describe(m)
		start := time.Now()
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig),
			zap.Bool("unique", d.unique))

		action, err := reconcile(ctx, coll, d, existing)
		if err != nil {
			log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
			continue
		}
		log.Info("index "+action, zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// reconcile brings one index into shape and reports what it did.
func reconcile(ctx context.Context, coll *mongo.Collection, d desired, existing map[string]existingIndex) (string, error) {
	ex, ok := existing[d.sig]
	if !ok {
		_, err := coll.Indexes().CreateOne(ctx, d.model)
		if !isOptionsConflictErr(err) {
			return "created", createErr(coll, d, err)
		}
		// Someone else created it between our listing and now: look again.
		fresh, lerr := listIndexes(ctx, coll)
		if lerr != nil {
			return "", err
		}
		if ex, ok = fresh[d.sig]; !ok {
			return "", err
		}
	}

	if isTrue(ex.Unique) == d.unique && (d.name == "" || ex.Name == d.name) {
		return "reused", nil
	}

	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		return "", fmt.Errorf("drop %s: %w", ex.Name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		return "", createErr(coll, d, err)
	}
	if isTrue(ex.Unique) == d.unique {
		return "renamed from " + ex.Name, nil
	}
	return "dropped and recreated", nil
}

// createErr explains the common failure of a unique index over existing
// duplicates, with a query to find them.
func createErr(coll *mongo.Collection, d desired, err error) error {
	if err == nil || !d.unique || !(wafflemongo.IsDup(err) || mongo.IsDuplicateKeyError(err)) {
		return err
	}
	field := d.model.Keys.(bson.D)[0].Key
	return fmt.Errorf("cannot create unique index, duplicates present on %s.%s; find them with "+
		`db.%s.aggregate([{ $group: { _id: "$%s", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`,
		coll.Name(), field, coll.Name(), field)
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email is unique across all users (case/diacritics folded).
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Role counts on the dashboard.
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("idx_users_role"),
		},
		// Paged lists sorted by name with a stable tiebreak.
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_fullnameci__id"),
		},
	})
}

func ensureDepartments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("departments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_departments_nameci"),
		},
	})
}

func ensureSubjects(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("subjects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Subject codes are unique regardless of case.
		{
			Keys:    bson.D{{Key: "code_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subjects_codeci"),
		},
		{
			Keys:    bson.D{{Key: "department", Value: 1}, {Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_subjects_department_nameci"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_subjects_nameci__id"),
		},
	})
}

func ensureClasses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("classes")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Per-department histogram and filters.
		{
			Keys:    bson.D{{Key: "department.name", Value: 1}},
			Options: options.Index().SetName("idx_classes_department_name"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_classes_nameci__id"),
		},
	})
}
