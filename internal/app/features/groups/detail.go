// internal/app/features/groups/detail.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/policy/grouppolicy"
	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/app/system/txn"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
)

// ServeGroup handles GET /groups/{identifier}. Only members may view a
// group.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := ResolveGroup(ctx, h.DB, chi.URLParam(r, "identifier"))
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if !grouppolicy.CanView(actorID, &group) {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Forbidden, "You are not a member of this group"))
		return
	}

	view, err := buildView(ctx, h.DB, &group)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, groupResponse{
		Message: "Group retrieved successfully",
		Group:   view,
	})
}

type renameGroupRequest struct {
	Name string `json:"name"`
}

// HandleRenameGroup handles PUT /groups/{identifier}. Creator only. An
// absent or empty name is a no-op, not an error.
func (h *Handler) HandleRenameGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req renameGroupRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	name := normalize.Name(req.Name)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	identifier := chi.URLParam(r, "identifier")
	store := groupstore.New(h.DB)

	group, err := txn.Apply(ctx,
		func(ctx context.Context) (models.Group, error) {
			return ResolveGroup(ctx, h.DB, identifier)
		},
		func(g *models.Group) error {
			if !grouppolicy.CanManage(actorID, g) {
				return apperr.E(apperr.Forbidden, "Only the group creator can rename the group")
			}
			g.Rename(name)
			return nil
		},
		store.Replace,
	)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	view, err := buildView(ctx, h.DB, &group)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, groupResponse{
		Message: "Group updated successfully",
		Group:   view,
	})
}

// HandleDeleteGroup handles DELETE /groups/{identifier}. Creator only.
// Inspections that reference the group are left in place; reading them
// afterwards fails the membership re-check.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := ResolveGroup(ctx, h.DB, chi.URLParam(r, "identifier"))
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if !grouppolicy.CanManage(actorID, &group) {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Forbidden, "Only the group creator can delete the group"))
		return
	}

	if err := groupstore.New(h.DB).Delete(ctx, group.ID); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.Message(w, r, http.StatusOK, "Group deleted successfully")
}
