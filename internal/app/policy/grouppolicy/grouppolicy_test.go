package grouppolicy

import (
	"testing"

	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPredicates(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	pending := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	g, _ := models.NewGroup(creator, "Maple St Team")
	_ = g.AddJoinRequest(member)
	_ = g.ApproveJoinRequest(member)
	_ = g.AddJoinRequest(pending)

	tests := []struct {
		name string
		fn   func(primitive.ObjectID, *models.Group) bool
		id   primitive.ObjectID
		want bool
	}{
		{"creator is member", IsMember, creator, true},
		{"member is member", IsMember, member, true},
		{"pending is not member", IsMember, pending, false},
		{"outsider is not member", IsMember, outsider, false},

		{"creator is creator", IsCreator, creator, true},
		{"member is not creator", IsCreator, member, false},

		{"pending is pending", IsPending, pending, true},
		{"member is not pending", IsPending, member, false},

		{"member can view", CanView, member, true},
		{"outsider cannot view", CanView, outsider, false},

		{"creator can manage", CanManage, creator, true},
		{"member cannot manage", CanManage, member, false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.id, &g); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}
