// internal/app/features/events/manage.go
package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	eventassign "github.com/dalemusser/volunteerhub/internal/app/store/eventassign"
	eventstore "github.com/dalemusser/volunteerhub/internal/app/store/events"
	"github.com/dalemusser/volunteerhub/internal/app/system/authz"
	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/volunteerhub/internal/app/system/respond"
	"github.com/dalemusser/volunteerhub/internal/app/system/timeouts"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Create handles POST /events. Coordinators and admins only (enforced in
// routes); the creating coordinator owns the event.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, "invalid JSON body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respond.ValidationError(w, "title is required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respond.ValidationError(w, "date must be YYYY-MM-DD")
		return
	}

	e := models.Event{
		Title:         req.Title,
		Description:   htmlsanitize.SanitizeStrict(req.Description),
		Location:      htmlsanitize.SanitizeStrict(req.Location),
		Date:          date,
		Hours:         req.Hours,
		MaxVolunteers: req.MaxVolunteers,
		CoordinatorID: userID,
	}
	if req.SchoolID != "" {
		schoolID, err := primitive.ObjectIDFromHex(req.SchoolID)
		if err != nil {
			respond.ValidationError(w, "school_id is not a valid id")
			return
		}
		e.SchoolID = &schoolID
	} else if sid := authz.UserSchoolID(r); sid != primitive.NilObjectID {
		e.SchoolID = &sid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Events.Create(ctx, e)
	if err != nil {
		switch {
		case errors.Is(err, eventstore.ErrBadCapacity),
			errors.Is(err, eventstore.ErrBadHours):
			respond.ValidationError(w, err.Error())
		default:
			respond.InternalError(w, h.Log, "create event", err)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, newEventView(created))
}

// Assign handles POST /events/{id}/assignments: grant a student
// coordinator review scope over this event's claims. Takes effect on the
// next review decision; no cached scope to invalidate.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	_, creatorName, creatorID, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w)
		return
	}

	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, "invalid JSON body")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.ValidationError(w, "user_id is not a valid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Events.Exists(ctx, eventID)
	if err != nil {
		respond.InternalError(w, h.Log, "resolve event", err)
		return
	}
	if !exists {
		respond.NotFound(w, "event not found")
		return
	}

	a, err := h.Assignments.Create(ctx, models.EventAssignment{
		UserID:        userID,
		EventID:       eventID,
		CreatedByID:   creatorID,
		CreatedByName: creatorName,
	})
	if err != nil {
		if errors.Is(err, eventassign.ErrDuplicateAssignment) {
			respond.Error(w, http.StatusConflict, respond.CodeInvalidState, err.Error())
			return
		}
		respond.InternalError(w, h.Log, "create assignment", err)
		return
	}

	respond.JSON(w, http.StatusCreated, assignmentResponse{Assignment: a})
}

// Unassign handles DELETE /events/{id}/assignments/{userID}.
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		respond.NotFound(w, "assignment not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Assignments.Delete(ctx, userID, eventID); err != nil {
		respond.InternalError(w, h.Log, "delete assignment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignmentsList handles GET /events/{id}/assignments.
func (h *Handler) AssignmentsList(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.NotFound(w, "event not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Events.Exists(ctx, eventID)
	if err != nil {
		respond.InternalError(w, h.Log, "resolve event", err)
		return
	}
	if !exists {
		respond.NotFound(w, "event not found")
		return
	}

	list, err := h.Assignments.ListByEvent(ctx, eventID)
	if err != nil {
		respond.InternalError(w, h.Log, "list assignments", err)
		return
	}
	respond.JSON(w, http.StatusOK, assignmentsListResponse{Assignments: list})
}
