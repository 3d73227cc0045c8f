// internal/app/features/badges/handler.go
package badges

import (
	"context"
	"net/http"

	badgestore "github.com/dalemusser/volunteerhub/internal/app/store/badges"
	"github.com/dalemusser/volunteerhub/internal/app/store/queries/hourtotals"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the badge catalog and per-user progress.
type Handler struct {
	Badges *badgestore.Store
	Totals *hourtotals.Queries
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Badges: badgestore.New(db),
		Totals: hourtotals.New(db),
		Log:    logger,
	}
}

type catalogResponse struct {
	Badges []models.Badge `json:"badges"`
}

// badgeProgress is one badge with the user's standing against it.
type badgeProgress struct {
	Badge         models.Badge `json:"badge"`
	RequiredHours float64      `json:"required_hours"`
	CurrentHours  float64      `json:"current_hours"`
	Earned        bool         `json:"earned"`
}

type progressResponse struct {
	UserID     string          `json:"user_id"`
	TotalHours float64         `json:"total_hours"`
	Progress   []badgeProgress `json:"progress"`
}

// List handles GET /badges: the full catalog, lowest tier first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Badges.List(ctx)
	if err != nil {
		respond.InternalError(w, h.Log, "list badges", err)
		return
	}
	respond.JSON(w, http.StatusOK, catalogResponse{Badges: list})
}

// Progress handles GET /badges/progress/{userID}: the user's approved-hour
// total against every badge threshold. Progress is derived on read from
// the claims ledger so it is always consistent with the totals it reports.
//
// Users may view their own progress; reviewer roles may view anyone's.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	_, _, callerID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		respond.NotFound(w, "user not found")
		return
	}
	if userID != callerID && !authz.IsReviewer(r) {
		respond.Forbidden(w, "you may only view your own badge progress")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Totals.TotalApprovedHours(ctx, userID)
	if err != nil {
		respond.InternalError(w, h.Log, "total approved hours", err)
		return
	}
	list, err := h.Badges.List(ctx)
	if err != nil {
		respond.InternalError(w, h.Log, "list badges", err)
		return
	}
	earned, err := h.Badges.EarnedByUser(ctx, userID)
	if err != nil {
		respond.InternalError(w, h.Log, "earned badges", err)
		return
	}

	progress := make([]badgeProgress, 0, len(list))
	for _, b := range list {
		_, has := earned[b.ID]
		progress = append(progress, badgeProgress{
			Badge:         b,
			RequiredHours: b.RequiredHours,
			CurrentHours:  total,
			Earned:        has,
		})
	}

	respond.JSON(w, http.StatusOK, progressResponse{
		UserID:     userID.Hex(),
		TotalHours: total,
		Progress:   progress,
	})
}
