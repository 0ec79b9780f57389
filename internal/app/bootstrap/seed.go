// internal/app/bootstrap/seed.go
package bootstrap

import (
	"context"
	"errors"

	classstore "github.com/dalemusser/schooldesk/internal/app/store/classes"
	departmentstore "github.com/dalemusser/schooldesk/internal/app/store/departments"
	subjectstore "github.com/dalemusser/schooldesk/internal/app/store/subjects"
	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func seats(n int) *int { return &n }

var demoDepartments = []string{"Science", "Mathematics", "Humanities", "Arts"}

var demoSubjects = []models.Subject{
	{Name: "Physics", Code: "PHY101", Department: "Science", Description: "Forces, motion and energy."},
	{Name: "Algebra", Code: "MATH101", Department: "Mathematics", Description: "Linear equations and functions."},
	{Name: "World History", Code: "HIST101", Department: "Humanities"},
	{Name: "Painting", Code: "ART110", Department: "Arts"},
}

// Capacity is the remaining seat count; some classes have none recorded
// and one has no department.
var demoClasses = []struct {
	name     string
	capacity *int
	dept     string
}{
	{"Physics A", seats(3), "Science"},
	{"Chemistry Lab", seats(45), "Science"},
	{"Algebra I", seats(28), "Mathematics"},
	{"History 101", nil, "Humanities"},
	{"Painting Studio", seats(2), "Arts"},
	{"Study Hall", seats(40), ""},
}

var demoUsers = []models.User{
	{FullName: "Alice Student", Email: "alice@demo.schooldesk.test", Role: models.RoleStudent},
	{FullName: "Bob Student", Email: "bob@demo.schooldesk.test", Role: models.RoleStudent},
	{FullName: "Carmen Student", Email: "carmen@demo.schooldesk.test", Role: models.RoleStudent},
	{FullName: "Jane Teacher", Email: "jane@demo.schooldesk.test", Role: models.RoleTeacher},
	{FullName: "Omar Teacher", Email: "omar@demo.schooldesk.test", Role: models.RoleTeacher},
}

// seedDemoData inserts demo records. It is safe to run on every start:
// unique indexes skip existing departments, subjects and users, and
// classes are only inserted into an empty collection.
func seedDemoData(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var inserted int

	depts := departmentstore.New(db)
	for _, name := range demoDepartments {
		_, err := depts.Create(ctx, models.Department{Name: name})
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, departmentstore.ErrDuplicateDepartment):
		default:
			return err
		}
	}

	subs := subjectstore.New(db)
	for _, s := range demoSubjects {
		_, err := subs.Create(ctx, s)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, subjectstore.ErrDuplicateCode):
		default:
			return err
		}
	}

	users := userstore.New(db)
	for _, u := range demoUsers {
		_, err := users.Create(ctx, u)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, userstore.ErrDuplicateEmail):
		default:
			return err
		}
	}

	classes := classstore.New(db)
	n, err := classes.Count(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n == 0 {
		for _, c := range demoClasses {
			cls := models.Class{Name: c.name, Capacity: c.capacity}
			if c.dept != "" {
				cls.Department = &models.DepartmentRef{Name: c.dept}
			}
			if _, err := classes.Create(ctx, cls); err != nil {
				return err
			}
			inserted++
		}
	}

	logger.Info("demo data seeded", zap.Int("inserted", inserted))
	return nil
}
