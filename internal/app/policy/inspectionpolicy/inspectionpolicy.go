// internal/app/policy/inspectionpolicy/inspectionpolicy.go

// Package inspectionpolicy centralizes the permission decisions for
// inspection state transitions. Predicates are pure functions over aggregate
// snapshots; membership questions delegate to grouppolicy so the member
// check is defined once.
package inspectionpolicy

import (
	"github.com/inspecthub/inspecthub/internal/app/policy/grouppolicy"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsCreator reports whether userID created the inspection.
func IsCreator(userID primitive.ObjectID, i *models.Inspection) bool {
	return i.IsCreatedBy(userID)
}

// CanView reports whether userID may read the inspection: members of the
// owning group only. Unlike creation-time checks, this is re-evaluated on
// every read.
func CanView(userID primitive.ObjectID, g *models.Group) bool {
	return grouppolicy.IsMember(userID, g)
}

// CanManage reports whether userID may reschedule, delete, or assign users
// to the inspection: the creator only.
func CanManage(userID primitive.ObjectID, i *models.Inspection) bool {
	return IsCreator(userID, i)
}

// CanAttend reports whether userID may mark attendance: members of the
// owning group.
func CanAttend(userID primitive.ObjectID, g *models.Group) bool {
	return grouppolicy.IsMember(userID, g)
}

// CanBeAssigned reports whether target may be added to the assignment set:
// they must currently be a member of the owning group.
func CanBeAssigned(targetID primitive.ObjectID, g *models.Group) bool {
	return grouppolicy.IsMember(targetID, g)
}
