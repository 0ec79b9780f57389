package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/schooldesk/internal/app/store/users"
	"github.com/dalemusser/schooldesk/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateTeacher(ctx, "Ada Lovelace", "ada@example.com")

	su := userstore.NewFetcher(db).FetchUser(ctx, u.ID.Hex())
	if su == nil {
		t.Fatal("expected session user")
	}
	if su.Name != "Ada Lovelace" || su.Role != "teacher" || su.Email != "ada@example.com" {
		t.Errorf("got %+v", su)
	}
}

func TestFetcher_FetchUser_Disabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateDisabledUser(ctx, "Gone", "gone@example.com")

	if su := userstore.NewFetcher(db).FetchUser(ctx, u.ID.Hex()); su != nil {
		t.Errorf("expected nil for disabled user, got %+v", su)
	}
}

func TestFetcher_FetchUser_Unknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := userstore.NewFetcher(db)
	if su := f.FetchUser(ctx, primitive.NewObjectID().Hex()); su != nil {
		t.Errorf("expected nil for unknown id, got %+v", su)
	}
	if su := f.FetchUser(ctx, "not-an-id"); su != nil {
		t.Errorf("expected nil for malformed id, got %+v", su)
	}
}
