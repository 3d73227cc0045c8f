package badgestore_test

import (
	"testing"

	badgestore "github.com/dalemusser/volunteerhub/internal/app/store/badges"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Evaluate_AwardsReachedTiers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateBadge(ctx, "Bronze", 10)
	fixtures.CreateBadge(ctx, "Silver", 25)
	fixtures.CreateBadge(ctx, "Gold", 50)

	userID := primitive.NewObjectID()
	awarded, err := store.Evaluate(ctx, userID, 30)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if len(awarded) != 2 {
		t.Fatalf("awarded: got %d badges, want 2", len(awarded))
	}
	if awarded[0].Name != "Bronze" || awarded[1].Name != "Silver" {
		t.Errorf("awarded order: got %q, %q; want Bronze, Silver", awarded[0].Name, awarded[1].Name)
	}
}

func TestStore_Evaluate_ExactThreshold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateBadge(ctx, "Bronze", 10)

	awarded, err := store.Evaluate(ctx, primitive.NewObjectID(), 10)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(awarded) != 1 {
		t.Errorf("reaching the threshold exactly should award, got %d badges", len(awarded))
	}
}

func TestStore_Evaluate_BelowThreshold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateBadge(ctx, "Bronze", 10)

	awarded, err := store.Evaluate(ctx, primitive.NewObjectID(), 9.5)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(awarded) != 0 {
		t.Errorf("below threshold should award nothing, got %d badges", len(awarded))
	}
}

func TestStore_Evaluate_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateBadge(ctx, "Bronze", 10)
	fixtures.CreateBadge(ctx, "Silver", 25)

	userID := primitive.NewObjectID()
	first, err := store.Evaluate(ctx, userID, 12)
	if err != nil {
		t.Fatalf("first Evaluate failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first pass: got %d badges, want 1", len(first))
	}

	// Re-running with the same total reports nothing new.
	second, err := store.Evaluate(ctx, userID, 12)
	if err != nil {
		t.Fatalf("second Evaluate failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second pass: got %d badges, want 0", len(second))
	}

	// A higher total awards only the newly reached tier.
	third, err := store.Evaluate(ctx, userID, 30)
	if err != nil {
		t.Fatalf("third Evaluate failed: %v", err)
	}
	if len(third) != 1 || third[0].Name != "Silver" {
		t.Errorf("third pass: got %v, want just Silver", third)
	}

	earned, err := store.EarnedByUser(ctx, userID)
	if err != nil {
		t.Fatalf("EarnedByUser failed: %v", err)
	}
	if len(earned) != 2 {
		t.Errorf("earned: got %d badges, want 2", len(earned))
	}
}

func TestStore_Evaluate_RecordsHoursAtAward(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	badge := fixtures.CreateBadge(ctx, "Bronze", 10)

	userID := primitive.NewObjectID()
	if _, err := store.Evaluate(ctx, userID, 14); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	earned, err := store.EarnedByUser(ctx, userID)
	if err != nil {
		t.Fatalf("EarnedByUser failed: %v", err)
	}
	ub, ok := earned[badge.ID]
	if !ok {
		t.Fatal("expected Bronze to be earned")
	}
	if ub.HoursAtAward != 14 {
		t.Errorf("hours_at_award: got %v, want 14", ub.HoursAtAward)
	}
	if ub.AwardedAt.IsZero() {
		t.Error("expected AwardedAt to be set")
	}
}

func TestStore_EnsureDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := badgestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tiers := []models.Badge{
		{Name: "Bronze", RequiredHours: 10},
		{Name: "Silver", RequiredHours: 25},
	}
	if err := store.EnsureDefaults(ctx, tiers); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("seeded badges: got %d, want 2", len(list))
	}
	if list[0].NameCI == "" {
		t.Error("expected NameCI to be folded on seed")
	}

	// Seeding again must not duplicate the catalog.
	if err := store.EnsureDefaults(ctx, tiers); err != nil {
		t.Fatalf("second EnsureDefaults failed: %v", err)
	}
	list, err = store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("badges after reseed: got %d, want 2", len(list))
	}
}
