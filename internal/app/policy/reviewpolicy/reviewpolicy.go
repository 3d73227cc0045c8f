// Package reviewpolicy decides which reviewers may act on which claims.
//
// Authorization rules:
//   - Admins can review any claim
//   - Coordinators can review claims belonging to their own school
//   - Student coordinators can review only event-type claims for events
//     they are currently assigned to
//   - Students and volunteers cannot review claims
//
// Scope is resolved at decision time, never cached from claim-creation
// time, because school membership and event assignments change.
package reviewpolicy

import (
	"context"

	"github.com/dalemusser/volunteerhub/internal/app/store/eventassign"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reviewer is the minimal identity a review decision needs.
type Reviewer struct {
	ID       primitive.ObjectID
	Role     string
	SchoolID primitive.ObjectID // NilObjectID when the reviewer has no school
}

// CanReview reports whether the reviewer may transition the given claim.
// Returns an error only if a database lookup fails.
func CanReview(ctx context.Context, db *mongo.Database, reviewer Reviewer, claim models.Claim) (bool, error) {
	switch reviewer.Role {
	case models.RoleAdmin:
		return true, nil

	case models.RoleCoordinator:
		if claim.SchoolID == nil || reviewer.SchoolID == primitive.NilObjectID {
			return false, nil
		}
		return *claim.SchoolID == reviewer.SchoolID, nil

	case models.RoleStudentCoordinator:
		if claim.ClaimType != models.ClaimTypeEvent || claim.EventID == nil {
			return false, nil
		}
		eventIDs, err := eventassign.New(db).EventIDsByUser(ctx, reviewer.ID)
		if err != nil {
			return false, err
		}
		for _, id := range eventIDs {
			if id == *claim.EventID {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, nil
	}
}

// PendingScope describes which pending claims a reviewer may list.
type PendingScope struct {
	// CanList indicates whether the reviewer can list pending claims at all.
	CanList bool
	// AllSchools indicates an unrestricted queue (admins).
	AllSchools bool
	// SchoolID restricts the queue to one school (coordinators).
	SchoolID primitive.ObjectID
	// EventIDs restricts the queue to event claims for these events
	// (student coordinators).
	EventIDs []primitive.ObjectID
}

// PendingScopeFor resolves the reviewer's pending-queue scope.
//
// Authorization:
//   - Admin: every pending claim
//   - Coordinator: pending claims of their school
//   - Student coordinator: pending event claims for assigned events
//   - Others: no queue
func PendingScopeFor(ctx context.Context, db *mongo.Database, reviewer Reviewer) (PendingScope, error) {
	switch reviewer.Role {
	case models.RoleAdmin:
		return PendingScope{CanList: true, AllSchools: true}, nil

	case models.RoleCoordinator:
		if reviewer.SchoolID == primitive.NilObjectID {
			return PendingScope{CanList: false}, nil
		}
		return PendingScope{CanList: true, SchoolID: reviewer.SchoolID}, nil

	case models.RoleStudentCoordinator:
		eventIDs, err := eventassign.New(db).EventIDsByUser(ctx, reviewer.ID)
		if err != nil {
			return PendingScope{}, err
		}
		if len(eventIDs) == 0 {
			return PendingScope{CanList: false}, nil
		}
		return PendingScope{CanList: true, EventIDs: eventIDs}, nil

	default:
		return PendingScope{CanList: false}, nil
	}
}
