// internal/app/features/claims/list.go
package claims

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/volunteerhub/internal/app/policy/reviewpolicy"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/inputval"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListMine handles GET /claims. Callers see their own ledger, optionally
// filtered by ?status=.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !inputval.IsValidClaimStatus(status) {
		respond.ValidationError(w, "status must be pending, approved, or rejected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Claims.ListByUser(ctx, userID, status)
	if err != nil {
		respond.InternalError(w, h.Log, "list claims", err)
		return
	}
	if list == nil {
		list = []models.Claim{}
	}
	respond.JSON(w, http.StatusOK, listResponse{Claims: list})
}

// ListPending handles GET /claims/pending: the reviewer's queue, scoped by
// role. Admins see everything, coordinators their school, student
// coordinators the event claims for their assigned events.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviewer, ok := reviewerFromRequest(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	scope, err := reviewpolicy.PendingScopeFor(ctx, h.DB, reviewer)
	if err != nil {
		respond.InternalError(w, h.Log, "resolve pending scope", err)
		return
	}
	if !scope.CanList {
		respond.Forbidden(w, "you have no claims to review")
		return
	}

	var list []models.Claim
	switch {
	case scope.AllSchools:
		list, err = h.Claims.ListPendingAll(ctx)
	case len(scope.EventIDs) > 0:
		list, err = h.Claims.ListPendingByEvents(ctx, scope.EventIDs)
	default:
		list, err = h.Claims.ListPendingBySchool(ctx, scope.SchoolID)
	}
	if err != nil {
		respond.InternalError(w, h.Log, "list pending claims", err)
		return
	}
	if list == nil {
		list = []models.Claim{}
	}
	respond.JSON(w, http.StatusOK, listResponse{Claims: list})
}

// Get handles GET /claims/{id}. Visible to the claimant and to anyone who
// could review the claim.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	claimID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "claim not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	claim, err := h.Claims.GetByID(ctx, claimID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "claim not found")
		return
	}
	if err != nil {
		respond.InternalError(w, h.Log, "get claim", err)
		return
	}

	if claim.UserID != userID {
		reviewer, _ := reviewerFromRequest(r)
		can, err := reviewpolicy.CanReview(ctx, h.DB, reviewer, claim)
		if err != nil {
			respond.InternalError(w, h.Log, "check claim access", err)
			return
		}
		if !can {
			respond.Forbidden(w, "you do not have access to this claim")
			return
		}
	}

	respond.JSON(w, http.StatusOK, claim)
}

// reviewerFromRequest builds the policy's reviewer identity from the
// session context.
func reviewerFromRequest(r *http.Request) (reviewpolicy.Reviewer, bool) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		return reviewpolicy.Reviewer{}, false
	}
	return reviewpolicy.Reviewer{
		ID:       userID,
		Role:     role,
		SchoolID: authz.UserSchoolID(r),
	}, true
}
