// internal/app/features/claims/routes.go
package claims

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/dalemusser/volunteerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /claims. Every route requires a
// signed-in caller; per-claim review scope is checked in the handlers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Post("/", h.Submit)
	r.Get("/", h.ListMine)

	r.With(auth.RequireRole(
		models.RoleAdmin,
		models.RoleCoordinator,
		models.RoleStudentCoordinator,
	)).Get("/pending", h.ListPending)

	r.Get("/{id}", h.Get)
	r.With(auth.RequireRole(
		models.RoleAdmin,
		models.RoleCoordinator,
		models.RoleStudentCoordinator,
	)).Put("/{id}/review", h.Review)

	return r
}
