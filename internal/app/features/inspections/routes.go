// internal/app/features/inspections/routes.go
package inspections

import (
	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
)

// Routes wires the inspections feature. Everything requires a signed-in
// actor; membership and creator checks run against the loaded aggregates.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/", h.HandleCreateInspection)
	r.Get("/group/{groupIdentifier}", h.ServeGroupInspections)

	r.Get("/{id}", h.ServeInspection)
	r.Put("/{id}", h.HandleUpdateInspection)
	r.Delete("/{id}", h.HandleDeleteInspection)

	r.Post("/{id}/assign", h.HandleAssign)
	r.Post("/{id}/attend", h.HandleAttend)

	r.Post("/{id}/ratings", h.HandleRateInspection)
	r.Get("/{id}/ratings", h.ServeRatings)

	return r
}
