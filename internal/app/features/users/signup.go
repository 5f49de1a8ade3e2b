// internal/app/features/users/signup.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by signup and login: the session cookie is set on
// the response, and the same identity is echoed as a bearer token for
// clients that do not keep cookies.
type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// HandleSignup handles POST /users/signup.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	name := normalize.Name(req.Name)
	email := normalize.Email(req.Email)
	if name == "" || email == "" || req.Password == "" {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Name, email, and password are required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.Wrap(apperr.Unavailable, "a storage error occurred", err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	h.issueCredentials(w, r, user, http.StatusCreated, "Account created successfully!")
}

// issueCredentials sets the session cookie and writes the auth envelope.
// Shared by signup and login.
func (h *Handler) issueCredentials(w http.ResponseWriter, r *http.Request, user models.User, status int, msg string) {
	su := &auth.SessionUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email}

	if err := h.SessionMgr.IssueSession(w, r, su); err != nil {
		h.Log.Warn("session issue failed", zap.Error(err))
	}

	token, err := h.Tokens.Issue(su)
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.Wrap(apperr.Unavailable, "a storage error occurred", err))
		return
	}

	httpapi.JSON(w, r, status, authResponse{
		Message: msg,
		Token:   token,
		User:    user.Public(),
	})
}
