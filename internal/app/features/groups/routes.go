// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
)

// Routes wires the groups feature. Every endpoint requires a signed-in
// actor; per-group permissions are decided by the policy package against
// the loaded aggregate.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Post("/", h.HandleCreateGroup)
	r.Get("/", h.ServeGroupsList)

	// {identifier} is a group id or a creator email; see resolveGroup.
	r.Get("/{identifier}", h.ServeGroup)
	r.Put("/{identifier}", h.HandleRenameGroup)
	r.Delete("/{identifier}", h.HandleDeleteGroup)

	r.Post("/{identifier}/join", h.HandleRequestJoin)
	r.Post("/{identifier}/leave", h.HandleLeaveGroup)
	r.Post("/{identifier}/requests/{userID}/approve", h.HandleApproveJoin)
	r.Post("/{identifier}/requests/{userID}/reject", h.HandleRejectJoin)

	return r
}
