// internal/domain/models/group.go
package models

import (
	"time"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a single-document aggregate: the member set and the pending join
// request set are embedded so every transition is persisted as one atomic
// replace.
//
// Invariants maintained by the methods below:
//   - CreatorID is always present in MemberIDs.
//   - A user id never appears in both MemberIDs and JoinRequestIDs.
//   - Both lists are duplicate-free; insertion order is preserved for display.
type Group struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	CreatorID      primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	MemberIDs      []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	JoinRequestIDs []primitive.ObjectID `bson:"join_request_ids" json:"join_request_ids"`

	// Version guards the read-check-mutate-replace cycle; see the group
	// store's Replace.
	Version int64 `bson:"version" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NewGroup creates a group with the creator as its sole member.
func NewGroup(creatorID primitive.ObjectID, name string) (Group, error) {
	if name == "" {
		return Group{}, apperr.E(apperr.InvalidInput, "Group name is required")
	}
	now := time.Now().UTC()
	return Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatorID: creatorID,
		MemberIDs: []primitive.ObjectID{creatorID},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasMember reports whether id is in the member set.
func (g *Group) HasMember(id primitive.ObjectID) bool {
	return containsID(g.MemberIDs, id)
}

// HasJoinRequest reports whether id has a pending join request.
func (g *Group) HasJoinRequest(id primitive.ObjectID) bool {
	return containsID(g.JoinRequestIDs, id)
}

// IsCreatedBy reports whether id is the group's creator.
func (g *Group) IsCreatedBy(id primitive.ObjectID) bool {
	return g.CreatorID == id
}

// Rename changes the group name. An empty name is treated as "no change
// requested", not an error.
func (g *Group) Rename(name string) {
	if name == "" {
		return
	}
	g.Name = name
	g.UpdatedAt = time.Now().UTC()
}

// AddJoinRequest files a pending join request for userID.
func (g *Group) AddJoinRequest(userID primitive.ObjectID) error {
	if g.HasMember(userID) {
		return apperr.E(apperr.Conflict, "You are already a member of this group")
	}
	if g.HasJoinRequest(userID) {
		return apperr.E(apperr.Conflict, "You have already requested to join this group")
	}
	g.JoinRequestIDs = append(g.JoinRequestIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// ApproveJoinRequest moves userID from the join request set to the member
// set. The remove and the add happen on the same in-memory snapshot, so a
// persisted group never shows the user in both sets.
func (g *Group) ApproveJoinRequest(userID primitive.ObjectID) error {
	if !g.HasJoinRequest(userID) {
		return apperr.E(apperr.InvalidState, "No pending join request for that user")
	}
	g.JoinRequestIDs = removeID(g.JoinRequestIDs, userID)
	g.MemberIDs = append(g.MemberIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// RejectJoinRequest discards userID's pending join request.
func (g *Group) RejectJoinRequest(userID primitive.ObjectID) error {
	if !g.HasJoinRequest(userID) {
		return apperr.E(apperr.InvalidState, "No pending join request for that user")
	}
	g.JoinRequestIDs = removeID(g.JoinRequestIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveMember takes userID out of the member set. The creator can never be
// removed; they must delete the group instead.
func (g *Group) RemoveMember(userID primitive.ObjectID) error {
	if !g.HasMember(userID) {
		return apperr.E(apperr.InvalidState, "You are not a member of this group")
	}
	if g.IsCreatedBy(userID) {
		return apperr.E(apperr.Forbidden, "The group creator cannot leave; delete the group instead")
	}
	g.MemberIDs = removeID(g.MemberIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
