// internal/app/features/inspections/create.go
package inspections

import (
	"context"
	"net/http"
	"time"

	"github.com/inspecthub/inspecthub/internal/app/features/groups"
	"github.com/inspecthub/inspecthub/internal/app/policy/inspectionpolicy"
	inspectionstore "github.com/inspecthub/inspecthub/internal/app/store/inspections"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
)

type createInspectionRequest struct {
	Group   string `json:"group"`
	Address string `json:"address"`
	Date    string `json:"date"`
}

// HandleCreateInspection handles POST /inspections. The caller must be a
// member of the target group.
func (h *Handler) HandleCreateInspection(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req createInspectionRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if req.Group == "" {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Group is required"))
		return
	}
	scheduledAt, err := parseDate(req.Date)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	group, err := groups.ResolveGroup(ctx, h.DB, req.Group)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if !inspectionpolicy.CanView(actorID, &group) {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Forbidden, "You are not a member of this group"))
		return
	}

	insp, err := models.NewInspection(actorID, group.ID, normalize.Text(req.Address), scheduledAt)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if err := inspectionstore.New(h.DB).Insert(ctx, insp); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	view, err := buildView(ctx, h.DB, &insp)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusCreated, inspectionResponse{
		Message:    "Inspection created successfully",
		Inspection: view,
	})
}

// parseDate accepts RFC 3339 timestamps and plain dates ("2024-05-01").
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, apperr.E(apperr.InvalidInput, "Inspection date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperr.E(apperr.InvalidInput, "Inspection date is not a valid date")
}
