// internal/app/store/claims/claimstore.go
package claimstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the durable ledger of hour claims. Claims are inserted pending,
// reviewed exactly once, and never deleted.
type Store struct {
	c      *mongo.Collection
	events *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:      db.Collection("claims"),
		events: db.Collection("events"),
	}
}

// Validation sentinels. Handlers map these to validation_error responses.
var (
	ErrBadClaimType      = errors.New("unknown claim type")
	ErrHoursRequired     = errors.New("hours must be greater than 0")
	ErrEventRequired     = errors.New("event claims require an event_id")
	ErrDonationRequired  = errors.New("donation claims require a donation_items count")
	ErrProofRequired     = errors.New("volunteer claims require a proof reference")
	ErrEventNotFound     = errors.New("referenced event does not exist")

	// ErrNotPending is returned when a review touches a claim that has
	// already left the pending state. This must surface to the caller;
	// a silent no-op here would hide double reviews.
	ErrNotPending = errors.New("claim is not pending")
)

// Draft carries the claimant's submission before validation.
type Draft struct {
	UserID   primitive.ObjectID
	SchoolID *primitive.ObjectID

	ClaimType   string
	Hours       float64
	Description string
	Date        time.Time

	EventID       *primitive.ObjectID
	DonationItems *int
	ProofRef      string
}

// Submit validates the draft per claim type and persists it pending.
//
// Per-type rules:
//   - event:     EventID present and resolvable
//   - donation:  DonationItems present and > 0
//   - volunteer: ProofRef present
//   - other:     hours may be 0; a reviewer finalizes them at approval
//
// Every type except `other` requires Hours > 0.
func (s *Store) Submit(ctx context.Context, d Draft) (models.Claim, error) {
	var claim models.Claim

	if d.Hours < 0 {
		return claim, ErrHoursRequired
	}

	switch d.ClaimType {
	case models.ClaimTypeEvent:
		if d.EventID == nil {
			return claim, ErrEventRequired
		}
		err := s.events.FindOne(ctx, bson.M{"_id": *d.EventID}).Err()
		if err == mongo.ErrNoDocuments {
			return claim, ErrEventNotFound
		}
		if err != nil {
			return claim, fmt.Errorf("resolve event: %w", err)
		}
		if d.Hours <= 0 {
			return claim, ErrHoursRequired
		}
	case models.ClaimTypeDonation:
		if d.DonationItems == nil || *d.DonationItems <= 0 {
			return claim, ErrDonationRequired
		}
		if d.Hours <= 0 {
			return claim, ErrHoursRequired
		}
	case models.ClaimTypeVolunteer:
		if d.ProofRef == "" {
			return claim, ErrProofRequired
		}
		if d.Hours <= 0 {
			return claim, ErrHoursRequired
		}
	case models.ClaimTypeOther:
		// Hours may be 0 here; the reviewer supplies the final value.
	default:
		return claim, ErrBadClaimType
	}

	now := time.Now().UTC()
	claim = models.Claim{
		ID:          primitive.NewObjectID(),
		UserID:      d.UserID,
		SchoolID:    d.SchoolID,
		ClaimType:   d.ClaimType,
		Hours:       d.Hours,
		Description: htmlsanitize.SanitizeStrict(d.Description),
		Date:        d.Date,
		Status:      models.ClaimStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch d.ClaimType {
	case models.ClaimTypeEvent:
		claim.EventID = d.EventID
	case models.ClaimTypeDonation:
		claim.DonationItems = d.DonationItems
	case models.ClaimTypeVolunteer:
		claim.ProofRef = d.ProofRef
	}

	if _, err := s.c.InsertOne(ctx, claim); err != nil {
		return claim, err
	}
	return claim, nil
}

// GetByID returns a single claim by its _id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Claim, error) {
	var claim models.Claim
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	return claim, err
}

// ListByUser returns a user's claims, newest first. An empty status means
// no status filter.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Claim, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

// ListPendingBySchool returns pending claims scoped to one school,
// oldest first so reviewers work the backlog in order.
func (s *Store) ListPendingBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.Claim, error) {
	return s.findPending(ctx, bson.M{
		"status":    models.ClaimStatusPending,
		"school_id": schoolID,
	})
}

// ListPendingByEvents returns pending event-type claims for the given
// events. Used for student-coordinator review queues.
func (s *Store) ListPendingByEvents(ctx context.Context, eventIDs []primitive.ObjectID) ([]models.Claim, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	return s.findPending(ctx, bson.M{
		"status":     models.ClaimStatusPending,
		"claim_type": models.ClaimTypeEvent,
		"event_id":   bson.M{"$in": eventIDs},
	})
}

// ListPendingAll returns every pending claim (admin review queue).
func (s *Store) ListPendingAll(ctx context.Context) ([]models.Claim, error) {
	return s.findPending(ctx, bson.M{"status": models.ClaimStatusPending})
}

// ReviewInput carries one reviewer decision.
type ReviewInput struct {
	ReviewerID   primitive.ObjectID
	ReviewerName string
	Decision     string // approve | reject
	Comment      string
	// Hours finalizes the hour value when approving an `other` claim.
	// Ignored otherwise; see Review.
	Hours *float64
}

// Review applies the single terminal transition to a pending claim.
//
// The read-check-write is one FindOneAndUpdate filtered on status=pending,
// so of two concurrent reviewers exactly one matches; the other gets
// ErrNotPending. Approving an `other`-type claim requires in.Hours > 0
// because the claimant submitted 0.
func (s *Store) Review(ctx context.Context, claimID primitive.ObjectID, in ReviewInput) (models.Claim, error) {
	var claim models.Claim

	var status string
	switch in.Decision {
	case models.DecisionApprove:
		status = models.ClaimStatusApproved
	case models.DecisionReject:
		status = models.ClaimStatusRejected
	default:
		return claim, fmt.Errorf("unknown decision %q", in.Decision)
	}

	// The `other` finalize rule needs the claim type up front. The status
	// check below remains the atomic gate; this read only shapes the update.
	current, err := s.GetByID(ctx, claimID)
	if err != nil {
		return claim, err
	}

	now := time.Now().UTC()
	set := bson.M{
		"status":         status,
		"reviewer_id":    in.ReviewerID,
		"reviewer_name":  in.ReviewerName,
		"review_comment": htmlsanitize.SanitizeStrict(in.Comment),
		"reviewed_at":    now,
		"updated_at":     now,
	}

	if status == models.ClaimStatusApproved && current.ClaimType == models.ClaimTypeOther {
		if in.Hours == nil || *in.Hours <= 0 {
			return claim, ErrHoursRequired
		}
		set["hours"] = *in.Hours
	}

	err = s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": claimID, "status": models.ClaimStatusPending},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&claim)
	if err == mongo.ErrNoDocuments {
		// The claim exists (read above); it just is not pending anymore.
		return claim, ErrNotPending
	}
	if err != nil {
		return claim, err
	}
	return claim, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Claim, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Claim
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) findPending(ctx context.Context, filter bson.M) ([]models.Claim, error) {
	cur, err := s.c.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Claim
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
