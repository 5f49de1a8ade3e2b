// internal/domain/models/inspection.go
package models

import (
	"time"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inspection is a scheduled property inspection tied to exactly one group.
// GroupID is a non-owning reference: deleting the group does not delete or
// block deletion of its inspections.
//
// AssignedTo and Attendees are sets of user ids. Entries must belong to the
// owning group's member set at the moment they are added; that is enforced
// at insertion by the callers, not re-validated on later reads.
type Inspection struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GroupID     primitive.ObjectID   `bson:"group_id" json:"group_id"`
	Address     string               `bson:"address" json:"address"`
	ScheduledAt time.Time            `bson:"scheduled_at" json:"scheduled_at"`
	CreatorID   primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	AssignedTo  []primitive.ObjectID `bson:"assigned_to" json:"assigned_to"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`

	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewInspection creates an inspection with empty assignment and attendance
// sets. The caller is responsible for the group membership check.
func NewInspection(creatorID, groupID primitive.ObjectID, address string, scheduledAt time.Time) (Inspection, error) {
	if address == "" {
		return Inspection{}, apperr.E(apperr.InvalidInput, "Property address is required")
	}
	if scheduledAt.IsZero() {
		return Inspection{}, apperr.E(apperr.InvalidInput, "Inspection date is required")
	}
	now := time.Now().UTC()
	return Inspection{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		Address:     address,
		ScheduledAt: scheduledAt,
		CreatorID:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsCreatedBy reports whether id created this inspection.
func (i *Inspection) IsCreatedBy(id primitive.ObjectID) bool {
	return i.CreatorID == id
}

// IsAssigned reports whether id is in the assignment set.
func (i *Inspection) IsAssigned(id primitive.ObjectID) bool {
	return containsID(i.AssignedTo, id)
}

// IsAttending reports whether id is in the attendee set.
func (i *Inspection) IsAttending(id primitive.ObjectID) bool {
	return containsID(i.Attendees, id)
}

// Reschedule overwrites address and/or date. Zero values mean "leave
// unchanged".
func (i *Inspection) Reschedule(address string, scheduledAt time.Time) {
	changed := false
	if address != "" {
		i.Address = address
		changed = true
	}
	if !scheduledAt.IsZero() {
		i.ScheduledAt = scheduledAt
		changed = true
	}
	if changed {
		i.UpdatedAt = time.Now().UTC()
	}
}

// Assign adds userID to the assignment set.
func (i *Inspection) Assign(userID primitive.ObjectID) error {
	if i.IsAssigned(userID) {
		return apperr.E(apperr.Conflict, "That user is already assigned to this inspection")
	}
	i.AssignedTo = append(i.AssignedTo, userID)
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Attend adds userID to the attendee set.
func (i *Inspection) Attend(userID primitive.ObjectID) error {
	if i.IsAttending(userID) {
		return apperr.E(apperr.Conflict, "You are already marked as attending this inspection")
	}
	i.Attendees = append(i.Attendees, userID)
	i.UpdatedAt = time.Now().UTC()
	return nil
}
