package validators_test

import (
	"testing"

	"github.com/dalemusser/schooldesk/internal/app/system/validators"
	"github.com/dalemusser/schooldesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "departments", "subjects", "classes"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		coll    string
		doc     bson.M
		wantErr bool
	}{
		{"user valid", "users", bson.M{"full_name": "Ada", "email": "ada@example.com", "email_ci": "ada@example.com", "role": "student", "status": "active"}, false},
		{"user unknown role allowed", "users", bson.M{"full_name": "Ada", "email": "ada@example.com", "email_ci": "ada@example.com", "role": "janitor", "status": "active"}, false},
		{"user missing email", "users", bson.M{"full_name": "Ada", "role": "student", "status": "active"}, true},
		{"user bad status", "users", bson.M{"full_name": "Ada", "email": "a@b.c", "email_ci": "a@b.c", "role": "student", "status": "gone"}, true},

		{"department valid", "departments", bson.M{"name": "Science", "name_ci": "science"}, false},
		{"department blank name", "departments", bson.M{"name": "   ", "name_ci": "x"}, true},

		{"subject valid", "subjects", bson.M{"name": "Physics", "code": "PHY101", "code_ci": "phy101", "department": "Science", "description": ""}, false},
		{"subject missing department", "subjects", bson.M{"name": "Physics", "code": "PHY101", "code_ci": "phy101"}, true},

		{"class minimal", "classes", bson.M{"name": "Physics A"}, false},
		{"class full", "classes", bson.M{"name": "Physics A", "capacity": 3, "department": bson.M{"name": "Science"}}, false},
		{"class null capacity", "classes", bson.M{"name": "Physics A", "capacity": nil}, false},
		{"class string capacity", "classes", bson.M{"name": "Physics A", "capacity": "three"}, true},
		{"class missing name", "classes", bson.M{"capacity": 3}, true},
	}

	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.Collection(tc.coll).InsertOne(ctx, tc.doc)
			if (err != nil) != tc.wantErr {
				t.Errorf("InsertOne() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
