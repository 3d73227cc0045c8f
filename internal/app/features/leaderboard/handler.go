// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/volunteerhub/internal/app/store/queries/hourtotals"
	userstore "github.com/dalemusser/volunteerhub/internal/app/store/users"
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const maxLimit = 100

// Handler serves the approved-hours leaderboard.
type Handler struct {
	Totals       *hourtotals.Queries
	Users        *userstore.Store
	DefaultLimit int
	Log          *zap.Logger
}

func NewHandler(db *mongo.Database, defaultLimit int, logger *zap.Logger) *Handler {
	if defaultLimit < 1 {
		defaultLimit = 10
	}
	return &Handler{
		Totals:       hourtotals.New(db),
		Users:        userstore.New(db),
		DefaultLimit: defaultLimit,
		Log:          logger,
	}
}

// row is one leaderboard entry with the user's display name resolved.
type row struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

type listResponse struct {
	Leaderboard []row `json:"leaderboard"`
}

// List handles GET /leaderboard?limit=N.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.ValidationError(w, "limit must be a positive integer")
			return
		}
		if n > maxLimit {
			n = maxLimit
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Totals.Leaderboard(ctx, limit)
	if err != nil {
		respond.InternalError(w, h.Log, "leaderboard query", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		respond.InternalError(w, h.Log, "resolve leaderboard names", err)
		return
	}

	rows := make([]row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, row{
			Rank:       i + 1,
			UserID:     e.UserID.Hex(),
			Name:       names[e.UserID],
			TotalHours: e.Total,
		})
	}
	respond.JSON(w, http.StatusOK, listResponse{Leaderboard: rows})
}

// Routes returns the subrouter mounted at /leaderboard.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Get("/", h.List)
	return r
}
