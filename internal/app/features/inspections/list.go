// internal/app/features/inspections/list.go
package inspections

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/features/groups"
	"github.com/inspecthub/inspecthub/internal/app/policy/inspectionpolicy"
	inspectionstore "github.com/inspecthub/inspecthub/internal/app/store/inspections"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
)

// ServeGroupInspections handles GET /inspections/group/{groupIdentifier}:
// every inspection for the group, soonest first. Members only.
func (h *Handler) ServeGroupInspections(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groups.ResolveGroup(ctx, h.DB, chi.URLParam(r, "groupIdentifier"))
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if !inspectionpolicy.CanView(actorID, &group) {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Forbidden, "You are not a member of this group"))
		return
	}

	list, err := inspectionstore.New(h.DB).ListByGroup(ctx, group.ID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	views := make([]inspectionView, 0, len(list))
	for i := range list {
		v, err := buildView(ctx, h.DB, &list[i])
		if err != nil {
			httpapi.Error(w, r, h.Log, err)
			return
		}
		views = append(views, v)
	}

	httpapi.JSON(w, r, http.StatusOK, inspectionsResponse{
		Message:     "Inspections retrieved successfully",
		Inspections: views,
	})
}
