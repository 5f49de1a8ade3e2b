// internal/app/features/inspections/detail.go
package inspections

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/policy/inspectionpolicy"
	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	inspectionstore "github.com/inspecthub/inspecthub/internal/app/store/inspections"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/app/system/txn"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// loadForMember resolves an inspection by path id, then re-resolves the
// owning group and checks the actor's membership. Membership is re-checked
// on every read, not just at creation. A group that has since been deleted
// reads as Forbidden for everyone; the dangling reference is tolerated,
// never a crash.
func (h *Handler) loadForMember(ctx context.Context, r *http.Request, actorID primitive.ObjectID) (models.Inspection, models.Group, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return models.Inspection{}, models.Group{}, apperr.E(apperr.InvalidInput, "Invalid inspection ID")
	}

	insp, err := inspectionstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		return models.Inspection{}, models.Group{}, err
	}

	group, err := groupstore.New(h.DB).GetByID(ctx, insp.GroupID)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return models.Inspection{}, models.Group{}, apperr.E(apperr.Forbidden, "You are not a member of this group")
		}
		return models.Inspection{}, models.Group{}, err
	}
	if !inspectionpolicy.CanView(actorID, &group) {
		return models.Inspection{}, models.Group{}, apperr.E(apperr.Forbidden, "You are not a member of this group")
	}
	return insp, group, nil
}

// ServeInspection handles GET /inspections/{id}.
func (h *Handler) ServeInspection(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	insp, _, err := h.loadForMember(ctx, r, actorID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	view, err := buildView(ctx, h.DB, &insp)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, inspectionResponse{
		Message:    "Inspection retrieved successfully",
		Inspection: view,
	})
}

type updateInspectionRequest struct {
	Address string `json:"address"`
	Date    string `json:"date"`
}

// HandleUpdateInspection handles PUT /inspections/{id}. Creator only.
// Absent fields are left unchanged.
func (h *Handler) HandleUpdateInspection(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req updateInspectionRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	var scheduledAt time.Time
	if req.Date != "" {
		var err error
		scheduledAt, err = parseDate(req.Date)
		if err != nil {
			httpapi.Error(w, r, h.Log, err)
			return
		}
	}
	address := normalize.Text(req.Address)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid inspection ID"))
		return
	}
	store := inspectionstore.New(h.DB)

	insp, err := txn.Apply(ctx,
		func(ctx context.Context) (models.Inspection, error) {
			return store.GetByID(ctx, id)
		},
		func(i *models.Inspection) error {
			if !inspectionpolicy.CanManage(actorID, i) {
				return apperr.E(apperr.Forbidden, "Only the inspection creator can update it")
			}
			i.Reschedule(address, scheduledAt)
			return nil
		},
		store.Replace,
	)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	view, err := buildView(ctx, h.DB, &insp)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, inspectionResponse{
		Message:    "Inspection updated successfully",
		Inspection: view,
	})
}

// HandleDeleteInspection handles DELETE /inspections/{id}. Creator only.
func (h *Handler) HandleDeleteInspection(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid inspection ID"))
		return
	}

	store := inspectionstore.New(h.DB)
	insp, err := store.GetByID(ctx, id)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if !inspectionpolicy.CanManage(actorID, &insp) {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Forbidden, "Only the inspection creator can delete it"))
		return
	}

	if err := store.Delete(ctx, insp.ID); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.Message(w, r, http.StatusOK, "Inspection deleted successfully")
}
