package schoolstore_test

import (
	"errors"
	"testing"

	schoolstore "github.com/dalemusser/volunteerhub/internal/app/store/schools"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.School{
		Name: "Émile Zola High",
		City: "Springfield",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.NameCI != "emile zola high" {
		t.Errorf("NameCI: got %q, want folded name", created.NameCI)
	}
	if created.Status != "active" {
		t.Errorf("status: got %q, want %q", created.Status, "active")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	unique := true
	name := "uniq_schools_nameci"
	_, err := db.Collection("schools").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name_ci", Value: 1}},
		Options: &options.IndexOptions{
			Unique: &unique,
			Name:   &name,
		},
	})
	if err != nil {
		t.Fatalf("failed to create name index: %v", err)
	}

	if _, err := store.Create(ctx, models.School{Name: "North High"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	// Folding makes these the same name.
	_, err = store.Create(ctx, models.School{Name: "NORTH HIGH"})
	if !errors.Is(err, schoolstore.ErrDuplicateName) {
		t.Errorf("duplicate Create: got %v, want ErrDuplicateName", err)
	}
}

func TestStore_List_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Zenith Academy", "Alpha High", "Midtown School"} {
		if _, err := store.Create(ctx, models.School{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("schools: got %d, want 3", len(list))
	}
	want := []string{"Alpha High", "Midtown School", "Zenith Academy"}
	for i, school := range list {
		if school.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, school.Name, want[i])
		}
	}
}

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schoolstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.School{Name: "North High"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := store.Exists(ctx, created.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected created school to exist")
	}

	exists, err = store.Exists(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("random id should not exist")
	}
}
