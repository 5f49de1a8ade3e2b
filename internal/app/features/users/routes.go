// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Account creation and login are the only unauthenticated endpoints.
	r.Post("/signup", h.HandleSignup)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/logout", h.HandleLogout)

		// Own profile
		pr.Get("/me", h.ServeProfile)
		pr.Put("/me", h.HandleUpdateProfile)
		pr.Delete("/me", h.HandleDeleteProfile)

		// Directory
		pr.Get("/", h.ServeUsersList)
		pr.Get("/search", h.ServeSearchUsers)
		pr.Get("/{id}", h.ServeUserByID)
	})

	return r
}
