// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
)

// ServeGroupsList handles GET /groups: every group the caller belongs to,
// newest first.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberships, err := groupstore.New(h.DB).ListForMember(ctx, actorID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	views := make([]groupView, 0, len(memberships))
	for i := range memberships {
		v, err := buildView(ctx, h.DB, &memberships[i])
		if err != nil {
			httpapi.Error(w, r, h.Log, err)
			return
		}
		views = append(views, v)
	}

	httpapi.JSON(w, r, http.StatusOK, groupsResponse{
		Message: "Groups retrieved successfully",
		Groups:  views,
	})
}
