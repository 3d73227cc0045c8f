// internal/domain/models/claim.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claim types form a closed set. Each type carries its own required fields,
// enforced at submit time by the claim store.
const (
	ClaimTypeEvent     = "event"     // requires EventID
	ClaimTypeDonation  = "donation"  // requires DonationItems
	ClaimTypeVolunteer = "volunteer" // requires ProofRef
	ClaimTypeOther     = "other"     // hours may be 0 until a reviewer finalizes them
)

// ValidClaimTypes lists every claim type the system accepts.
var ValidClaimTypes = []string{
	ClaimTypeEvent,
	ClaimTypeDonation,
	ClaimTypeVolunteer,
	ClaimTypeOther,
}

// Claim statuses. A claim starts pending; approved and rejected are terminal.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Review decisions accepted by the approval workflow.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Claim is a single submission of volunteer-hour credit.
//
// Claims are an audit ledger: they are never hard-deleted, and once a
// reviewer moves one out of pending it never changes again. The reviewer
// fields are written exactly once, atomically with the status transition.
type Claim struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID  `bson:"user_id" json:"user_id"`
	SchoolID *primitive.ObjectID `bson:"school_id,omitempty" json:"school_id,omitempty"`

	ClaimType   string    `bson:"claim_type" json:"claim_type"` // event | donation | volunteer | other
	Hours       float64   `bson:"hours" json:"hours"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        time.Time `bson:"date" json:"date"` // date of the activity

	// Type-specific fields. Exactly the field for ClaimType is set.
	EventID       *primitive.ObjectID `bson:"event_id,omitempty" json:"event_id,omitempty"`
	DonationItems *int                `bson:"donation_items,omitempty" json:"donation_items,omitempty"`
	ProofRef      string              `bson:"proof_ref,omitempty" json:"proof_ref,omitempty"` // opaque blob-storage reference

	Status        string              `bson:"status" json:"status"` // pending | approved | rejected
	ReviewerID    *primitive.ObjectID `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewerName  string              `bson:"reviewer_name,omitempty" json:"reviewer_name,omitempty"`
	ReviewComment string              `bson:"review_comment,omitempty" json:"review_comment,omitempty"`
	ReviewedAt    *time.Time          `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Terminal reports whether the claim has left the pending state.
func (c *Claim) Terminal() bool {
	return c.Status != ClaimStatusPending
}
