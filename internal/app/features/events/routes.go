// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /events.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.With(auth.RequireRole(models.RoleAdmin, models.RoleCoordinator)).Post("/", h.Create)

	r.Get("/{id}", h.Get)

	r.Post("/{id}/register", h.Register)
	r.Delete("/{id}/register", h.Unregister)

	r.With(auth.RequireRole(models.RoleAdmin, models.RoleCoordinator)).
		Get("/{id}/registrations", h.RegistrationsList)

	r.With(auth.RequireRole(models.RoleAdmin, models.RoleCoordinator)).
		Post("/{id}/assignments", h.Assign)
	r.With(auth.RequireRole(models.RoleAdmin, models.RoleCoordinator)).
		Get("/{id}/assignments", h.AssignmentsList)
	r.With(auth.RequireRole(models.RoleAdmin, models.RoleCoordinator)).
		Delete("/{id}/assignments/{userID}", h.Unassign)

	return r
}
