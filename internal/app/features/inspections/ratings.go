// internal/app/features/inspections/ratings.go
package inspections

import (
	"context"
	"net/http"

	ratingstore "github.com/inspecthub/inspecthub/internal/app/store/ratings"
	"github.com/inspecthub/inspecthub/internal/app/system/authz"
	"github.com/inspecthub/inspecthub/internal/app/system/httpapi"
	"github.com/inspecthub/inspecthub/internal/app/system/normalize"
	"github.com/inspecthub/inspecthub/internal/app/system/timeouts"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
)

type rateRequest struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	Message string        `json:"message"`
	Rating  models.Rating `json:"rating"`
}

type ratingsResponse struct {
	Message string          `json:"message"`
	Ratings []models.Rating `json:"ratings"`
}

// HandleRateInspection handles POST /inspections/{id}/ratings. Gated on
// group membership like every other inspection read.
func (h *Handler) HandleRateInspection(w http.ResponseWriter, r *http.Request) {
	actorID, ok := authz.Actor(r)
	if !ok {
		httpapi.Error(w, r, h.Log, apperr.E(apperr.Unauthenticated, "Authentication required"))
		return
	}

	var req rateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	insp, _, err := h.loadForMember(ctx, r, actorID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	rating, err := models.NewRating(insp.ID, actorID, req.Stars, normalize.Text(req.Comment))
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}
	if err := ratingstore.New(h.DB).Insert(ctx, rating); err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusCreated, ratingResponse{
		Message: "Rating submitted successfully",
		Rating:  rating,
	})
}

// ServeRatings handles GET /inspections/{id}/ratings. Members only.
func (h *Handler) ServeRatings(w http.ResponseWriter, r *http.Request) {
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

	list, err := ratingstore.New(h.DB).ListByInspection(ctx, insp.ID)
	if err != nil {
		httpapi.Error(w, r, h.Log, err)
		return
	}

	httpapi.JSON(w, r, http.StatusOK, ratingsResponse{
		Message: "Ratings retrieved successfully",
		Ratings: list,
	})
}
