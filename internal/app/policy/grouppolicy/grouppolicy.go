// internal/app/policy/grouppolicy.go

// Package grouppolicy centralizes the permission decisions for group state
// transitions. Each predicate is a pure function over an aggregate snapshot;
// handlers call exactly one combination of these before mutating, and never
// re-derive the checks elsewhere.
package grouppolicy

import (
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsMember reports whether userID is in the group's member set.
func IsMember(userID primitive.ObjectID, g *models.Group) bool {
	return g.HasMember(userID)
}

// IsCreator reports whether userID created the group.
func IsCreator(userID primitive.ObjectID, g *models.Group) bool {
	return g.IsCreatedBy(userID)
}

// IsPending reports whether userID has an unapproved join request.
func IsPending(userID primitive.ObjectID, g *models.Group) bool {
	return g.HasJoinRequest(userID)
}

// CanView reports whether userID may read the group: members only.
func CanView(userID primitive.ObjectID, g *models.Group) bool {
	return IsMember(userID, g)
}

// CanManage reports whether userID may rename or delete the group, or decide
// its join requests: the creator only.
func CanManage(userID primitive.ObjectID, g *models.Group) bool {
	return IsCreator(userID, g)
}
