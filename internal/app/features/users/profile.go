// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userResponse struct {
	Message string            `json:"message"`
	User    models.PublicUser `json:"user"`
}

// ServeProfile handles GET /users/me.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByID(ctx, actorID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, userResponse{
		Message: "Profile retrieved successfully",
		User:    user.Public(),
	})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUpdateProfile handles PUT /users/me. Absent fields are left
// unchanged; a new email must not belong to another account.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req updateProfileRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	name := normalize.Name(req.Name)
	email := normalize.Email(req.Email)

	hash := ""
	if req.Password != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpapi.Error(w, r, h.Log, apperr.Wrap(apperr.Unavailable, "a storage error occurred", err))
			return
		}
		hash = string(raw)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).UpdateProfile(ctx, actorID, name, email, hash)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	// Refresh the session so the cookie identity tracks the new name/email.
	su := &auth.SessionUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email}
	if err := h.SessionMgr.IssueSession(w, r, su); err != nil {
		h.Log.Warn("session refresh failed", zap.Error(err))
	}

	httpapi.JSON(w, r, http.StatusOK, userResponse{
		Message: "Profile updated successfully",
		User:    user.Public(),
	})
}

// HandleDeleteProfile handles DELETE /users/me. Group member lists and
// inspection assignment lists are not cleaned up; reads tolerate the
// dangling references by omission.
func (h *Handler) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := userstore.New(h.DB).Delete(ctx, actorID); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	if err := h.SessionMgr.ClearSession(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}

	httpapi.Message(w, r, http.StatusOK, "User deleted")
}
