// internal/app/features/claims/submit.go
package claims

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	claimstore "github.com/dalemusser/volunteerhub/internal/app/store/claims"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/inputval"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Submit handles POST /claims. Any signed-in user can submit a claim for
// themselves; the claim enters the ledger pending.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, "invalid JSON body")
		return
	}

	req.ClaimType = strings.ToLower(strings.TrimSpace(req.ClaimType))
	if !inputval.IsValidClaimType(req.ClaimType) {
		respond.ValidationError(w, "claim_type must be one of: "+inputval.AllowedClaimTypesList())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respond.ValidationError(w, "date must be YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	draft := claimstore.Draft{
		UserID:      userID,
		ClaimType:   req.ClaimType,
		Hours:       req.Hours,
		Description: req.Description,
		Date:        date,
	}

	// School defaults to the claimant's own; an explicit school_id must
	// resolve.
	if req.SchoolID != "" {
		schoolID, err := primitive.ObjectIDFromHex(req.SchoolID)
		if err != nil {
			respond.ValidationError(w, "school_id is not a valid id")
			return
		}
		exists, err := h.Schools.Exists(ctx, schoolID)
		if err != nil {
			respond.InternalError(w, h.Log, "resolve school", err)
			return
		}
		if !exists {
			respond.NotFound(w, "school not found")
			return
		}
		draft.SchoolID = &schoolID
	} else if sid := authz.UserSchoolID(r); sid != primitive.NilObjectID {
		draft.SchoolID = &sid
	}

	switch req.ClaimType {
	case "event":
		if req.EventID == "" {
			respond.ValidationError(w, "event claims require an event_id")
			return
		}
		eventID, err := primitive.ObjectIDFromHex(req.EventID)
		if err != nil {
			respond.ValidationError(w, "event_id is not a valid id")
			return
		}
		draft.EventID = &eventID
	case "donation":
		draft.DonationItems = req.DonationItems
	case "volunteer":
		draft.ProofRef = strings.TrimSpace(req.ProofRef)
	}

	claim, err := h.Claims.Submit(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, claimstore.ErrEventNotFound):
			respond.NotFound(w, err.Error())
		case errors.Is(err, claimstore.ErrBadClaimType),
			errors.Is(err, claimstore.ErrHoursRequired),
			errors.Is(err, claimstore.ErrEventRequired),
			errors.Is(err, claimstore.ErrDonationRequired),
			errors.Is(err, claimstore.ErrProofRequired):
			respond.ValidationError(w, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.NotFound(w, "referenced record not found")
		default:
			respond.InternalError(w, h.Log, "submit claim", err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, claim)
}
