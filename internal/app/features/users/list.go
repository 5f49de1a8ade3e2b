// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type usersResponse struct {
	Message string              `json:"message"`
	Users   []models.PublicUser `json:"users"`
}

// ServeUsersList handles GET /users.
func (h *Handler) ServeUsersList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, usersResponse{
		Message: "Users retrieved successfully",
		Users:   publicUsers(all),
	})
}

// ServeSearchUsers handles GET /users/search?query=.
func (h *Handler) ServeSearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Search query is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matches, err := userstore.New(h.DB).Search(ctx, query)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, usersResponse{
		Message: "Search results retrieved successfully",
		Users:   publicUsers(matches),
	})
}

// ServeUserByID handles GET /users/{id}.
func (h *Handler) ServeUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.InvalidInput, "Invalid user ID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, userResponse{
		Message: "User retrieved successfully",
		User:    user.Public(),
	})
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
