package subjectstore_test

import (
	"testing"

	subjectstore "github.com/dalemusser/schooldesk/internal/app/store/subjects"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/schooldesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subjectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Subject{
		Name:        " Algebra I ",
		Code:        "math101",
		Description: "Linear equations",
		Department:  "Mathematics",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Algebra I" {
		t.Errorf("Name: got %q, want %q", created.Name, "Algebra I")
	}
	if created.Code != "MATH101" {
		t.Errorf("Code: got %q, want %q", created.Code, "MATH101")
	}
	if created.CodeCI == "" || created.NameCI == "" {
		t.Error("expected folded fields to be set")
	}
	if created.Department != "Mathematics" {
		t.Errorf("Department: got %q, want %q", created.Department, "Mathematics")
	}
}

func TestStore_Create_DuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subjectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Subject{Name: "Biology", Code: "SCI-1", Department: "Science"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Subject{Name: "Chemistry", Code: "sci-1", Department: "Science"})
	if err != subjectstore.ErrDuplicateCode {
		t.Errorf("expected ErrDuplicateCode, got %v", err)
	}

	n, err := store.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count: got %d, want 1", n)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subjectstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSubject(ctx, "Physics", "PHY1", "Science")
	fixtures.CreateSubject(ctx, "Art History", "ART1", "Arts")

	subs, err := store.List(ctx, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len: got %d, want 2", len(subs))
	}
	if subs[0].Name != "Art History" {
		t.Errorf("subs[0]: got %q, want %q", subs[0].Name, "Art History")
	}
}
