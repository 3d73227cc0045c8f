// internal/app/features/claims/review.go
package claims

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/volunteerhub/internal/app/policy/reviewpolicy"
	claimstore "github.com/dalemusser/volunteerhub/internal/app/store/claims"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/inputval"
	"github.com/dalemusser/volunteerhub/internal/app/system/notify"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Review handles PUT /claims/{id}/review: the single terminal transition.
//
// Authorization is re-resolved here, at transition time, because school
// membership and event assignments may have changed since the claim was
// submitted. The store's conditional update is what guarantees only one of
// two racing reviewers wins; this handler maps the loser's ErrNotPending
// to a 409 rather than ever absorbing it.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	_, reviewerName, reviewerID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}
	reviewer, _ := reviewerFromRequest(r)

	claimID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "claim not found")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, "invalid JSON body")
		return
	}
	req.Decision = strings.ToLower(strings.TrimSpace(req.Decision))
	if !inputval.IsValidDecision(req.Decision) {
		respond.ValidationError(w, "decision must be approve or reject")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	can, err := reviewpolicy.CanReview(ctx, h.DB, reviewer, claim)
	if err != nil {
		respond.InternalError(w, h.Log, "check review authorization", err)
		return
	}
	if !can {
		respond.Forbidden(w, "you are not authorized to review this claim")
		return
	}

	updated, err := h.Claims.Review(ctx, claimID, claimstore.ReviewInput{
		ReviewerID:   reviewerID,
		ReviewerName: reviewerName,
		Decision:     req.Decision,
		Comment:      req.Comment,
		Hours:        req.Hours,
	})
	if err != nil {
		switch {
		case errors.Is(err, claimstore.ErrNotPending):
			respond.Error(w, http.StatusConflict, respond.CodeInvalidState, "claim has already been reviewed")
		case errors.Is(err, claimstore.ErrHoursRequired):
			respond.ValidationError(w, "approving an other-type claim requires a final hours value")
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.NotFound(w, "claim not found")
		default:
			respond.InternalError(w, h.Log, "review claim", err)
		}
		return
	}

	resp := reviewResponse{Claim: updated}

	// Approval side effects: recompute the total and evaluate badges. The
	// transition has already committed, so failures here are logged, not
	// surfaced as review failures.
	if updated.Status == models.ClaimStatusApproved {
		total, err := h.Totals.TotalApprovedHours(ctx, updated.UserID)
		if err != nil {
			h.Log.Error("recompute approved hours", zap.Error(err),
				zap.String("user_id", updated.UserID.Hex()))
		} else {
			resp.TotalHours = total
			awarded, err := h.Badges.Evaluate(ctx, updated.UserID, total)
			if err != nil {
				h.Log.Error("evaluate badges", zap.Error(err),
					zap.String("user_id", updated.UserID.Hex()))
			}
			resp.NewBadges = awarded
		}
	}

	h.notifyReviewed(updated, resp.NewBadges)

	respond.JSON(w, http.StatusOK, resp)
}

// notifyReviewed dispatches the claimant's review notification and one
// message per newly earned badge. Best-effort by contract.
func (h *Handler) notifyReviewed(claim models.Claim, newBadges []models.Badge) {
	msgs := make([]notify.Message, 0, 1+len(newBadges))

	verb := "approved"
	if claim.Status == models.ClaimStatusRejected {
		verb = "rejected"
	}
	body := fmt.Sprintf("Your %s claim from %s was %s.",
		claim.ClaimType, claim.Date.Format("Jan 2, 2006"), verb)
	if claim.ReviewComment != "" {
		body += " " + claim.ReviewComment
	}
	msgs = append(msgs, notify.Message{
		RecipientID: claim.UserID.Hex(),
		Title:       "Claim " + verb,
		Body:        body,
	})

	for _, b := range newBadges {
		msgs = append(msgs, notify.Message{
			RecipientID: claim.UserID.Hex(),
			Title:       "New badge earned",
			Body:        fmt.Sprintf("You earned the %s badge (%.0f hours).", b.Name, b.RequiredHours),
		})
	}

	notify.SendAsync(h.Dispatcher, h.Log, timeouts.Medium(), msgs)
}
