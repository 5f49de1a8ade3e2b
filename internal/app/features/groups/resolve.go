// internal/app/features/groups/resolve.go
package groups

import (
	"context"
	"strings"

	groupstore "github.com/inspecthub/inspecthub/internal/app/store/groups"
	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResolveGroup looks a group up by a path identifier: a 24-hex object id,
// or a creator email. A deleted creator makes the email path NotFound,
// same as an unknown group id.
func ResolveGroup(ctx context.Context, db *mongo.Database, identifier string) (models.Group, error) {
	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		return groupstore.New(db).GetByID(ctx, id)
	}
	if strings.Contains(identifier, "@") {
		creator, err := userstore.New(db).GetByEmail(ctx, identifier)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return models.Group{}, apperr.E(apperr.NotFound, "Group not found")
			}
			return models.Group{}, err
		}
		return groupstore.New(db).GetByCreator(ctx, creator.ID)
	}
	return models.Group{}, apperr.E(apperr.InvalidInput, "Invalid group identifier")
}
