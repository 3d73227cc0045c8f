package claimstore_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	claimstore "github.com/dalemusser/volunteerhub/internal/app/store/claims"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/dalemusser/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Submit_Volunteer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	claim, err := store.Submit(ctx, claimstore.Draft{
		UserID:      userID,
		ClaimType:   models.ClaimTypeVolunteer,
		Hours:       3.5,
		Description: "Shelf sorting at the food bank",
		Date:        time.Now().UTC(),
		ProofRef:    "blob://proof/abc123",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if claim.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if claim.Status != models.ClaimStatusPending {
		t.Errorf("status: got %q, want %q", claim.Status, models.ClaimStatusPending)
	}
	if claim.Hours != 3.5 {
		t.Errorf("hours: got %v, want 3.5", claim.Hours)
	}
	if claim.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Submit_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	missingEventID := primitive.NewObjectID()
	zero := 0

	tests := []struct {
		name    string
		draft   claimstore.Draft
		wantErr error
	}{
		{
			name: "unknown type",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: "mystery",
				Hours:     1,
			},
			wantErr: claimstore.ErrBadClaimType,
		},
		{
			name: "event without event_id",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeEvent,
				Hours:     2,
			},
			wantErr: claimstore.ErrEventRequired,
		},
		{
			name: "event id that does not resolve",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeEvent,
				Hours:     2,
				EventID:   &missingEventID,
			},
			wantErr: claimstore.ErrEventNotFound,
		},
		{
			name: "donation without items",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeDonation,
				Hours:     1,
			},
			wantErr: claimstore.ErrDonationRequired,
		},
		{
			name: "donation with zero items",
			draft: claimstore.Draft{
				UserID:        userID,
				ClaimType:     models.ClaimTypeDonation,
				Hours:         1,
				DonationItems: &zero,
			},
			wantErr: claimstore.ErrDonationRequired,
		},
		{
			name: "volunteer without proof",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeVolunteer,
				Hours:     1,
			},
			wantErr: claimstore.ErrProofRequired,
		},
		{
			name: "volunteer with zero hours",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeVolunteer,
				ProofRef:  "blob://proof/x",
			},
			wantErr: claimstore.ErrHoursRequired,
		},
		{
			name: "negative hours",
			draft: claimstore.Draft{
				UserID:    userID,
				ClaimType: models.ClaimTypeOther,
				Hours:     -1,
			},
			wantErr: claimstore.ErrHoursRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Submit(ctx, tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_Submit_OtherAllowsZeroHours(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim, err := store.Submit(ctx, claimstore.Draft{
		UserID:      primitive.NewObjectID(),
		ClaimType:   models.ClaimTypeOther,
		Hours:       0,
		Description: "Organized the supply closet",
		Date:        time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if claim.Hours != 0 {
		t.Errorf("hours: got %v, want 0", claim.Hours)
	}
}

func TestStore_Submit_SanitizesDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim, err := store.Submit(ctx, claimstore.Draft{
		UserID:      primitive.NewObjectID(),
		ClaimType:   models.ClaimTypeVolunteer,
		Hours:       1,
		Description: "<script>alert('x')</script>Helped out",
		Date:        time.Now().UTC(),
		ProofRef:    "blob://proof/x",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if claim.Description != "Helped out" {
		t.Errorf("description: got %q, want %q", claim.Description, "Helped out")
	}
}

func TestStore_Review_Approve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	claim := fixtures.CreateClaim(ctx, userID, models.ClaimTypeVolunteer, 4, nil)

	reviewerID := primitive.NewObjectID()
	reviewed, err := store.Review(ctx, claim.ID, claimstore.ReviewInput{
		ReviewerID:   reviewerID,
		ReviewerName: "Pat Reviewer",
		Decision:     models.DecisionApprove,
		Comment:      "Looks good",
	})
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}

	if reviewed.Status != models.ClaimStatusApproved {
		t.Errorf("status: got %q, want %q", reviewed.Status, models.ClaimStatusApproved)
	}
	if reviewed.ReviewerID == nil || *reviewed.ReviewerID != reviewerID {
		t.Error("expected ReviewerID to be recorded")
	}
	if reviewed.ReviewedAt == nil {
		t.Error("expected ReviewedAt to be set")
	}
	if reviewed.ReviewerName != "Pat Reviewer" {
		t.Errorf("reviewer name: got %q", reviewed.ReviewerName)
	}
}

func TestStore_Review_SecondReviewFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim := fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 2, nil)

	in := claimstore.ReviewInput{
		ReviewerID:   primitive.NewObjectID(),
		ReviewerName: "First Reviewer",
		Decision:     models.DecisionReject,
	}
	if _, err := store.Review(ctx, claim.ID, in); err != nil {
		t.Fatalf("first Review failed: %v", err)
	}

	in.Decision = models.DecisionApprove
	_, err := store.Review(ctx, claim.ID, in)
	if !errors.Is(err, claimstore.ErrNotPending) {
		t.Errorf("second Review: got %v, want ErrNotPending", err)
	}

	// The first decision must stand.
	got, err := store.GetByID(ctx, claim.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ClaimStatusRejected {
		t.Errorf("status after double review: got %q, want %q", got.Status, models.ClaimStatusRejected)
	}
}

func TestStore_Review_ConcurrentOneWins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim := fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 2, nil)

	const reviewers = 8
	var wg sync.WaitGroup
	errs := make([]error, reviewers)

	for i := 0; i < reviewers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Review(ctx, claim.ID, claimstore.ReviewInput{
				ReviewerID:   primitive.NewObjectID(),
				ReviewerName: "Racing Reviewer",
				Decision:     models.DecisionApprove,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, claimstore.ErrNotPending):
			// expected for the losers
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Errorf("winning reviews: got %d, want exactly 1", wins)
	}
}

func TestStore_Review_OtherRequiresFinalHours(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim := fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeOther, 0, nil)

	in := claimstore.ReviewInput{
		ReviewerID:   primitive.NewObjectID(),
		ReviewerName: "Reviewer",
		Decision:     models.DecisionApprove,
	}
	_, err := store.Review(ctx, claim.ID, in)
	if !errors.Is(err, claimstore.ErrHoursRequired) {
		t.Fatalf("approve without hours: got %v, want ErrHoursRequired", err)
	}

	// The failed approval must not have consumed the pending state.
	final := 6.0
	in.Hours = &final
	reviewed, err := store.Review(ctx, claim.ID, in)
	if err != nil {
		t.Fatalf("Review with hours failed: %v", err)
	}
	if reviewed.Hours != 6 {
		t.Errorf("finalized hours: got %v, want 6", reviewed.Hours)
	}
}

func TestStore_Review_RejectIgnoresHours(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	claim := fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeOther, 0, nil)

	reviewed, err := store.Review(ctx, claim.ID, claimstore.ReviewInput{
		ReviewerID:   primitive.NewObjectID(),
		ReviewerName: "Reviewer",
		Decision:     models.DecisionReject,
		Comment:      "Not enough detail",
	})
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.Status != models.ClaimStatusRejected {
		t.Errorf("status: got %q, want %q", reviewed.Status, models.ClaimStatusRejected)
	}
}

func TestStore_ListByUser_StatusFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	reviewerID := primitive.NewObjectID()
	fixtures.CreateClaim(ctx, userID, models.ClaimTypeVolunteer, 1, nil)
	fixtures.CreateClaim(ctx, userID, models.ClaimTypeVolunteer, 2, nil)
	fixtures.CreateApprovedClaim(ctx, userID, 3, reviewerID)
	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 9, nil)

	all, err := store.ListByUser(ctx, userID, "")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all claims: got %d, want 3", len(all))
	}

	pending, err := store.ListByUser(ctx, userID, models.ClaimStatusPending)
	if err != nil {
		t.Fatalf("ListByUser pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending claims: got %d, want 2", len(pending))
	}
}

func TestStore_ListPendingBySchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fixtures.CreateSchool(ctx, "North High")
	otherSchool := fixtures.CreateSchool(ctx, "South High")

	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 1, &school.ID)
	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 2, &school.ID)
	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 3, &otherSchool.ID)
	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 4, nil)

	got, err := store.ListPendingBySchool(ctx, school.ID)
	if err != nil {
		t.Fatalf("ListPendingBySchool failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("school-scoped pending: got %d, want 2", len(got))
	}
	for _, c := range got {
		if c.SchoolID == nil || *c.SchoolID != school.ID {
			t.Errorf("claim %s leaked from another school", c.ID.Hex())
		}
	}
}

func TestStore_ListPendingByEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coordinator := fixtures.CreateAdmin(ctx, "Coordinator", "c@test.com")
	event := fixtures.CreateEvent(ctx, "Beach Cleanup", coordinator.ID, 20)
	otherEvent := fixtures.CreateEvent(ctx, "Park Cleanup", coordinator.ID, 20)

	// Event claims need the live event reference, so go through Submit.
	mustSubmit := func(eventID primitive.ObjectID) {
		t.Helper()
		_, err := store.Submit(ctx, claimstore.Draft{
			UserID:    primitive.NewObjectID(),
			ClaimType: models.ClaimTypeEvent,
			Hours:     2,
			Date:      time.Now().UTC(),
			EventID:   &eventID,
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	mustSubmit(event.ID)
	mustSubmit(event.ID)
	mustSubmit(otherEvent.ID)
	// Non-event claims never show up in event-scoped queues.
	fixtures.CreateClaim(ctx, primitive.NewObjectID(), models.ClaimTypeVolunteer, 1, nil)

	got, err := store.ListPendingByEvents(ctx, []primitive.ObjectID{event.ID})
	if err != nil {
		t.Fatalf("ListPendingByEvents failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("event-scoped pending: got %d, want 2", len(got))
	}

	none, err := store.ListPendingByEvents(ctx, nil)
	if err != nil {
		t.Fatalf("ListPendingByEvents with no events failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("no assigned events should yield an empty queue, got %d", len(none))
	}
}

func TestStore_ListPending_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := claimstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		_, err := store.Submit(ctx, claimstore.Draft{
			UserID:    userID,
			ClaimType: models.ClaimTypeVolunteer,
			Hours:     float64(i + 1),
			Date:      time.Now().UTC(),
			ProofRef:  "blob://proof/x",
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, err := store.ListPendingAll(ctx)
	if err != nil {
		t.Fatalf("ListPendingAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("pending: got %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Error("pending queue is not oldest-first")
		}
	}
}
