// internal/app/features/inspections/participation.go
package inspections

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/policy/inspectionpolicy"
	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	inspectionstore "github.com/inspecthub/inspecthub/internal/app/store/inspections"
	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/app/system/txn"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAssign handles POST /inspections/{id}/assign?userEmail=. Creator
// only. The target must exist and be a member of the owning group at the
// moment of assignment.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	email := normalize.Email(r.URL.Query().Get("userEmail"))
	if email == "" {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "userEmail query parameter is required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid inspection ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := inspectionstore.New(h.DB)
	gs := groupstore.New(h.DB)
	us := userstore.New(h.DB)

	insp, err := txn.Apply(ctx,
		func(ctx context.Context) (models.Inspection, error) {
			return store.GetByID(ctx, id)
		},
		func(i *models.Inspection) error {
			// The creator check comes first so a non-creator probing with
			// arbitrary emails learns nothing about which accounts exist.
			if !inspectionpolicy.CanManage(actorID, i) {
				return apperr.E(apperr.Forbidden, "Only the inspection creator can assign users")
			}
			target, err := us.GetByEmail(ctx, email)
			if err != nil {
				return err
			}
			group, err := gs.GetByID(ctx, i.GroupID)
			if err != nil {
				return err
			}
			if !inspectionpolicy.CanBeAssigned(target.ID, &group) {
				return apperr.E(apperr.InvalidState, "User must be a group member to be assigned")
			}
			return i.Assign(target.ID)
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
		Message:    "User assigned to inspection",
		Inspection: view,
	})
}

// HandleAttend handles POST /inspections/{id}/attend. Any member of the
// owning group can mark themselves as attending.
func (h *Handler) HandleAttend(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid inspection ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := inspectionstore.New(h.DB)
	gs := groupstore.New(h.DB)

	insp, err := txn.Apply(ctx,
		func(ctx context.Context) (models.Inspection, error) {
			return store.GetByID(ctx, id)
		},
		func(i *models.Inspection) error {
			group, err := gs.GetByID(ctx, i.GroupID)
			if err != nil {
				if apperr.KindOf(err) == apperr.NotFound {
					return apperr.E(apperr.Forbidden, "You are not a member of this group")
				}
				return err
			}
			if !inspectionpolicy.CanAttend(actorID, &group) {
				return apperr.E(apperr.Forbidden, "You are not a member of this group")
			}
			return i.Attend(actorID)
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
		Message:    "You are marked as attending",
		Inspection: view,
	})
}
