// internal/app/features/users/login.go
package users

import (
	"context"
	"net/http"

	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /users/login. A wrong email and a wrong password
// produce the same response so the endpoint does not confirm which emails
// have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Email and password are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Invalid email or password"))
			return
		}
		httpapi.Error(w, r, h.Log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Invalid email or password"))
		return
	}

	h.issueCredentials(w, r, user, http.StatusOK, "Welcome back, "+user.Name+"!")
}

// HandleLogout handles POST /users/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.ClearSession(w, r); err != nil {
		h.Log.Warn("session clear failed", zap.Error(err))
	}
	httpapi.Message(w, r, http.StatusOK, "Logged out successfully")
}
