// internal/app/features/events/handler.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventassign "github.com/dalemusser/volunteerhub/internal/app/store/eventassign"
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	registrationstore "github.com/dalemusser/volunteerhub/internal/app/store/registrations"
	"github.com/dalemusser/volunteerhub/internal/app/system/notify"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves event listings, capacity-managed registration, and
// coordinator event management.
type Handler struct {
	Events        *eventstore.Store
	Registrations *registrationstore.Store
	Assignments   *eventassign.Store
	Dispatcher    notify.Dispatcher
	Log           *zap.Logger
}

// NewHandler constructs the events handler and its stores.
func NewHandler(db *mongo.Database, dispatcher notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Events:        eventstore.New(db),
		Registrations: registrationstore.New(db),
		Assignments:   eventassign.New(db),
		Dispatcher:    dispatcher,
		Log:           logger,
	}
}

// List handles GET /events: all events with their remaining seats.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Events.List(ctx)
	if err != nil {
		respond.InternalError(w, h.Log, "list events", err)
		return
	}

	out := make([]eventView, 0, len(list))
	for _, e := range list {
		out = append(out, newEventView(e))
	}
	respond.JSON(w, http.StatusOK, listResponse{Events: out})
}

// Get handles GET /events/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.NotFound(w, "event not found")
		return
	}
	if err != nil {
		respond.InternalError(w, h.Log, "get event", err)
		return
	}
	respond.JSON(w, http.StatusOK, newEventView(e))
}

func newEventView(e models.Event) eventView {
	remaining := e.MaxVolunteers - e.RegisteredCount
	if remaining < 0 {
		remaining = 0
	}
	return eventView{Event: e, RemainingSeats: remaining}
}
