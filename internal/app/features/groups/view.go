// internal/app/features/groups/view.go
package groups

import (
	"context"
	"time"

	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// groupView is the response shape for a single group, with member and join
// request ids expanded into user references. Ids whose user account has
// since been deleted are omitted rather than surfaced as errors.
type groupView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	CreatorID    string              `json:"creatorId"`
	Members      []models.PublicUser `json:"members"`
	JoinRequests []models.PublicUser `json:"joinRequests"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type groupResponse struct {
	Message string    `json:"message"`
	Group   groupView `json:"group"`
}

type groupsResponse struct {
	Message string      `json:"message"`
	Groups  []groupView `json:"groups"`
}

func buildView(ctx context.Context, db *mongo.Database, g *models.Group) (groupView, error) {
	us := userstore.New(db)

	members, err := us.GetManyByIDs(ctx, g.MemberIDs)
	if err != nil {
		return groupView{}, err
	}
	pending, err := us.GetManyByIDs(ctx, g.JoinRequestIDs)
	if err != nil {
		return groupView{}, err
	}

	v := groupView{
		ID:           g.ID.Hex(),
		Name:         g.Name,
		CreatorID:    g.CreatorID.Hex(),
		Members:      make([]models.PublicUser, 0, len(members)),
		JoinRequests: make([]models.PublicUser, 0, len(pending)),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	for _, u := range members {
		v.Members = append(v.Members, u.Public())
	}
	for _, u := range pending {
		v.JoinRequests = append(v.JoinRequests, u.Public())
	}
	return v, nil
}
