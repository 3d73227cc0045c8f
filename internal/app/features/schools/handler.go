// internal/app/features/schools/handler.go
package schools

import (
	"context"
	"errors"
	"net/http"

	schoolstore "github.com/dalemusser/volunteerhub/internal/app/store/schools"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the school directory.
type Handler struct {
	Schools *schoolstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Schools: schoolstore.New(db), Log: logger}
}

type listResponse struct {
	Schools []models.School `json:"schools"`
}

// List handles GET /schools.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Schools.List(ctx)
	if err != nil {
		respond.InternalError(w, h.Log, "list schools", err)
		return
	}
	respond.JSON(w, http.StatusOK, listResponse{Schools: list})
}

// Get handles GET /schools/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "school not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	school, err := h.Schools.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "school not found")
		return
	}
	if err != nil {
		respond.InternalError(w, h.Log, "get school", err)
		return
	}
	respond.JSON(w, http.StatusOK, school)
}
