// internal/app/features/events/register.go
package events

import (
	"context"
	"errors"
	"net/http"

	registrationstore "github.com/dalemusser/volunteerhub/internal/app/store/registrations"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/notify"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register handles POST /events/{id}/register. Any signed-in user may
// claim a seat for themselves; the store enforces capacity, so two users
// racing for the last seat get one 201 and one 409 event_full.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var schoolID *primitive.ObjectID
	if sid := authz.UserSchoolID(r); sid != primitive.NilObjectID {
		schoolID = &sid
	}

	reg, err := h.Registrations.Register(ctx, eventID, userID, schoolID)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.NotFound(w, "event not found")
		case errors.Is(err, registrationstore.ErrAlreadyRegistered):
			respond.Error(w, http.StatusConflict, respond.CodeAlreadyRegistered, err.Error())
		case errors.Is(err, registrationstore.ErrEventFull):
			respond.Error(w, http.StatusConflict, respond.CodeEventFull, err.Error())
		default:
			respond.InternalError(w, h.Log, "register for event", err)
		}
		return
	}

	h.notifyRegistered(ctx, eventID, userID)

	respond.JSON(w, http.StatusCreated, registrationResponse{Registration: reg})
}

// Unregister handles DELETE /events/{id}/register and releases the seat.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registrations.Unregister(ctx, eventID, userID); err != nil {
		if errors.Is(err, registrationstore.ErrNotRegistered) {
			respond.Error(w, http.StatusConflict, respond.CodeNotRegistered, err.Error())
			return
		}
		respond.InternalError(w, h.Log, "unregister from event", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Registrations handles GET /events/{id}/registrations for coordinators
// reviewing attendance.
func (h *Handler) RegistrationsList(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Registrations.ListByEvent(ctx, eventID)
	if err != nil {
		respond.InternalError(w, h.Log, "list registrations", err)
		return
	}
	respond.JSON(w, http.StatusOK, registrationsListResponse{Registrations: regs})
}

// notifyRegistered confirms the seat to the registrant. Best effort only;
// the registration already succeeded.
func (h *Handler) notifyRegistered(ctx context.Context, eventID, userID primitive.ObjectID) {
	e, err := h.Events.GetByID(ctx, eventID)
	if err != nil {
		return
	}
	notify.SendAsync(h.Dispatcher, h.Log, 0, []notify.Message{{
		RecipientID: userID.Hex(),
		Title:       "Registration confirmed",
		Body:        "You are registered for " + e.Title + ".",
	}})
}
