// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/app/policy/grouppolicy"
	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/app/system/txn"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// applyGroup runs one membership transition through the optimistic
// replace cycle and writes the updated group back as the response.
func (h *Handler) applyGroup(w http.ResponseWriter, r *http.Request, msg string, mutate func(*models.Group) error) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	identifier := chi.URLParam(r, "identifier")
	store := groupstore.New(h.DB)

	group, err := txn.Apply(ctx,
		func(ctx context.Context) (models.Group, error) {
			return ResolveGroup(ctx, h.DB, identifier)
		},
		mutate,
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

	httpapi.JSON(w, r, http.StatusOK, groupResponse{Message: msg, Group: view})
}

// HandleRequestJoin handles POST /groups/{identifier}/join.
func (h *Handler) HandleRequestJoin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	h.applyGroup(w, r, "Join request sent", func(g *models.Group) error {
		return g.AddJoinRequest(actorID)
	})
}

// HandleLeaveGroup handles POST /groups/{identifier}/leave.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	h.applyGroup(w, r, "You have left the group", func(g *models.Group) error {
		return g.RemoveMember(actorID)
	})
}

// HandleApproveJoin handles POST /groups/{identifier}/requests/{userID}/approve.
// Creator only.
func (h *Handler) HandleApproveJoin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid user ID"))
		return
	}

	h.applyGroup(w, r, "Join request approved", func(g *models.Group) error {
		if !grouppolicy.CanManage(actorID, g) {
			return apperr.E(apperr.Forbidden, "Only the group creator can approve join requests")
		}
		return g.ApproveJoinRequest(targetID)
	})
}

// HandleRejectJoin handles POST /groups/{identifier}/requests/{userID}/reject.
// Creator only.
func (h *Handler) HandleRejectJoin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid user ID"))
		return
	}

	h.applyGroup(w, r, "Join request rejected", func(g *models.Group) error {
		if !grouppolicy.CanManage(actorID, g) {
			return apperr.E(apperr.Forbidden, "Only the group creator can reject join requests")
		}
		return g.RejectJoinRequest(targetID)
	})
}
