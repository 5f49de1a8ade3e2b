package models

import (
	"testing"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewGroup(t *testing.T) {
	creator := primitive.NewObjectID()

	g, err := NewGroup(creator, "Maple St Team")
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	if g.CreatorID != creator {
		t.Error("creator not set")
	}
	if !g.HasMember(creator) {
		t.Error("creator should be a member at creation")
	}
	if len(g.MemberIDs) != 1 {
		t.Errorf("expected creator as sole member, got %d members", len(g.MemberIDs))
	}
	if len(g.JoinRequestIDs) != 0 {
		t.Error("expected no join requests at creation")
	}
}

func TestNewGroup_EmptyName(t *testing.T) {
	_, err := NewGroup(primitive.NewObjectID(), "")
	if apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestRename_EmptyIsNoOp(t *testing.T) {
	g, _ := NewGroup(primitive.NewObjectID(), "Maple St Team")

	g.Rename("")
	if g.Name != "Maple St Team" {
		t.Errorf("empty rename should keep the name, got %q", g.Name)
	}

	g.Rename("Oak Ave Team")
	if g.Name != "Oak Ave Team" {
		t.Errorf("rename not applied, got %q", g.Name)
	}
}

func TestAddJoinRequest(t *testing.T) {
	creator := primitive.NewObjectID()
	applicant := primitive.NewObjectID()
	g, _ := NewGroup(creator, "Maple St Team")

	if err := g.AddJoinRequest(applicant); err != nil {
		t.Fatalf("AddJoinRequest failed: %v", err)
	}
	if !g.HasJoinRequest(applicant) {
		t.Error("applicant should be pending")
	}
	if g.HasMember(applicant) {
		t.Error("applicant should not be a member yet")
	}

	// Duplicate request
	if err := g.AddJoinRequest(applicant); apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("duplicate request: expected Conflict, got %v", err)
	}

	// Members cannot request
	if err := g.AddJoinRequest(creator); apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("member request: expected Conflict, got %v", err)
	}
}

func TestApproveJoinRequest(t *testing.T) {
	creator := primitive.NewObjectID()
	applicant := primitive.NewObjectID()
	g, _ := NewGroup(creator, "Maple St Team")
	_ = g.AddJoinRequest(applicant)

	if err := g.ApproveJoinRequest(applicant); err != nil {
		t.Fatalf("ApproveJoinRequest failed: %v", err)
	}
	if !g.HasMember(applicant) {
		t.Error("approved applicant should be a member")
	}
	if g.HasJoinRequest(applicant) {
		t.Error("approved applicant should no longer be pending")
	}

	// No pending request left
	if err := g.ApproveJoinRequest(applicant); apperr.KindOf(err) != apperr.InvalidState {
		t.Errorf("expected InvalidState, got %v", err)
	}
}

func TestRejectJoinRequest(t *testing.T) {
	creator := primitive.NewObjectID()
	applicant := primitive.NewObjectID()
	g, _ := NewGroup(creator, "Maple St Team")
	_ = g.AddJoinRequest(applicant)

	if err := g.RejectJoinRequest(applicant); err != nil {
		t.Fatalf("RejectJoinRequest failed: %v", err)
	}
	if g.HasJoinRequest(applicant) {
		t.Error("rejected applicant should not be pending")
	}
	if g.HasMember(applicant) {
		t.Error("rejected applicant should not be a member")
	}

	if err := g.RejectJoinRequest(applicant); apperr.KindOf(err) != apperr.InvalidState {
		t.Errorf("expected InvalidState, got %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	creator := primitive.NewObjectID()
	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	g, _ := NewGroup(creator, "Maple St Team")
	_ = g.AddJoinRequest(member)
	_ = g.ApproveJoinRequest(member)

	// Non-members cannot leave
	if err := g.RemoveMember(outsider); apperr.KindOf(err) != apperr.InvalidState {
		t.Errorf("outsider leave: expected InvalidState, got %v", err)
	}

	// Creator can never leave
	if err := g.RemoveMember(creator); apperr.KindOf(err) != apperr.Forbidden {
		t.Errorf("creator leave: expected Forbidden, got %v", err)
	}
	if !g.HasMember(creator) {
		t.Error("creator must remain a member")
	}

	if err := g.RemoveMember(member); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if g.HasMember(member) {
		t.Error("member should be gone after leaving")
	}
}

// TestMembershipFlow walks the full join-request lifecycle: request, approve,
// leave, with the member sets checked at each step.
func TestMembershipFlow(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	g, err := NewGroup(userA, "Maple St Team")
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	if len(g.MemberIDs) != 1 || !g.IsCreatedBy(userA) {
		t.Fatal("creator should be the sole initial member")
	}

	if err := g.AddJoinRequest(userB); err != nil {
		t.Fatalf("AddJoinRequest failed: %v", err)
	}
	if !g.HasJoinRequest(userB) || g.HasMember(userB) {
		t.Fatal("B should be pending, not a member")
	}

	if err := g.ApproveJoinRequest(userB); err != nil {
		t.Fatalf("ApproveJoinRequest failed: %v", err)
	}
	if !g.HasMember(userB) || g.HasJoinRequest(userB) {
		t.Fatal("B should be a member, not pending")
	}
	if len(g.MemberIDs) != 2 {
		t.Fatalf("expected 2 members, got %d", len(g.MemberIDs))
	}

	if err := g.RemoveMember(userB); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if len(g.MemberIDs) != 1 || !g.HasMember(userA) || !g.IsCreatedBy(userA) {
		t.Fatal("A should remain the sole member and creator")
	}
}

// A user id never appears in both sets, across every transition order.
func TestMemberAndRequestSetsDisjoint(t *testing.T) {
	creator := primitive.NewObjectID()
	user := primitive.NewObjectID()
	g, _ := NewGroup(creator, "Maple St Team")

	_ = g.AddJoinRequest(user)
	_ = g.ApproveJoinRequest(user)

	if g.HasMember(user) && g.HasJoinRequest(user) {
		t.Fatal("user in both members and join requests")
	}

	// Re-requesting while a member must not re-add to either set.
	_ = g.AddJoinRequest(user)
	count := 0
	for _, id := range g.MemberIDs {
		if id == user {
			count++
		}
	}
	if count != 1 {
		t.Errorf("user appears %d times in members", count)
	}
	if g.HasJoinRequest(user) {
		t.Error("member should not also be pending")
	}
}
