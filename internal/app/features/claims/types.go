// internal/app/features/claims/types.go
package claims

import "github.com/dalemusser/volunteerhub/internal/domain/models"

// submitRequest is the POST /claims body. Type-specific fields are only
// read for the matching claim type.
type submitRequest struct {
	ClaimType   string  `json:"claim_type"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	SchoolID    string  `json:"school_id,omitempty"`

	EventID       string `json:"event_id,omitempty"`
	DonationItems *int   `json:"donation_items,omitempty"`
	ProofRef      string `json:"proof_ref,omitempty"`
}

// reviewRequest is the PUT /claims/{id}/review body. Hours is required only
// when approving an `other`-type claim.
type reviewRequest struct {
	Decision string   `json:"decision"` // approve | reject
	Comment  string   `json:"comment,omitempty"`
	Hours    *float64 `json:"hours,omitempty"`
}

// reviewResponse returns the reviewed claim plus the approval side effects
// the caller usually wants to show immediately.
type reviewResponse struct {
	Claim      models.Claim   `json:"claim"`
	TotalHours float64        `json:"total_hours,omitempty"`
	NewBadges  []models.Badge `json:"new_badges,omitempty"`
}

// listResponse wraps claim lists so the shape can grow without breaking
// clients.
type listResponse struct {
	Claims []models.Claim `json:"claims"`
}
