package classstore_test

import (
	"testing"

	classstore "github.com/dalemusser/schooldesk/internal/app/store/classes"
	"github.com/dalemusser/schooldesk/internal/domain/models"
	"github.com/dalemusser/schooldesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(n int) *int { return &n }

// onlyClass reads back the single stored class.
func onlyClass(t *testing.T, store *classstore.Store) models.Class {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	classes, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(classes) != 1 {
		t.Fatalf("len: got %d, want 1", len(classes))
	}
	return classes[0]
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Class{
		Name:       "Biology 1A",
		Capacity:   intPtr(3),
		Department: &models.DepartmentRef{Name: " Science "},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.DepartmentName() != "Science" {
		t.Errorf("DepartmentName: got %q, want %q", created.DepartmentName(), "Science")
	}

	got := onlyClass(t, store)
	if got.Capacity == nil || *got.Capacity != 3 {
		t.Errorf("Capacity: got %v, want 3", got.Capacity)
	}
}

func TestStore_Create_NoCapacityNoDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Class{Name: "Study Hall"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got := onlyClass(t, store)
	if got.Capacity != nil {
		t.Errorf("Capacity: got %v, want nil", *got.Capacity)
	}
	if got.Department != nil {
		t.Errorf("Department: got %+v, want nil", got.Department)
	}
}

func TestStore_Create_Invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Class{Name: ""}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := store.Create(ctx, models.Class{Name: "X", Capacity: intPtr(-1)}); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateClass(ctx, "Zoology", intPtr(20), "Science")
	fixtures.CreateClass(ctx, "Art", nil, "")

	classes, err := store.List(ctx, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("len: got %d, want 2", len(classes))
	}
	if classes[0].Name != "Art" || classes[0].Department != nil {
		t.Errorf("classes[0]: got %+v", classes[0])
	}
}
