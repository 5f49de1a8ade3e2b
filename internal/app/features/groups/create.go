// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

// HandleCreateGroup handles POST /groups. The caller becomes the creator
// and sole initial member.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req createGroupRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	group, err := models.NewGroup(actorID, normalize.Name(req.Name))
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := groupstore.New(h.DB).Insert(ctx, group); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	view, err := buildView(ctx, h.DB, &group)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusCreated, groupResponse{
		Message: "Group created successfully",
		Group:   view,
	})
}
