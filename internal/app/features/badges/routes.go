// internal/app/features/badges/routes.go
package badges

import (
	"github.com/dalemusser/volunteerhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /badges.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/progress/{userID}", h.Progress)

	return r
}
