package groups

import (
	"net/http"
	"testing"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveGroup(t *testing.T) {
	_, db, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")
	group := fx.CreateGroup(ctx, "Maple St Team", creator.ID)

	// By id.
	got, err := ResolveGroup(ctx, db, group.ID.Hex())
	if err != nil || got.ID != group.ID {
		t.Errorf("by id: %v, %+v", err, got)
	}

	// By creator email.
	got, err = ResolveGroup(ctx, db, "creator@example.com")
	if err != nil || got.ID != group.ID {
		t.Errorf("by email: %v, %+v", err, got)
	}

	// Unknown id and unknown email are NotFound.
	if _, err := ResolveGroup(ctx, db, primitive.NewObjectID().Hex()); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("unknown id: expected NotFound, got %v", err)
	}
	if _, err := ResolveGroup(ctx, db, "nobody@example.com"); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("unknown email: expected NotFound, got %v", err)
	}

	// Anything else is InvalidInput.
	if _, err := ResolveGroup(ctx, db, "not-an-id"); apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("garbage identifier: expected InvalidInput, got %v", err)
	}
}

func TestServeGroup_MembersOnly(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")
	outsider := fx.CreateUser(ctx, "Outsider", "outsider@example.com")
	group := fx.CreateGroup(ctx, "Maple St Team", creator.ID)

	rec := testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewRequest(http.MethodGet, "/groups/"+group.ID.Hex()), testutil.UserFor(outsider))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.ServeGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)
}

func TestHandleRenameGroup(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")
	member := fx.CreateUser(ctx, "Member", "member@example.com")
	group := fx.CreateGroupWithMembers(ctx, "Maple St Team", creator.ID, member.ID)

	// Members cannot rename.
	rec := testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/groups/"+group.ID.Hex(), `{"name":"Hijacked"}`), testutil.UserFor(member))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleRenameGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// The creator can.
	rec = testutil.NewRecorder()
	req = testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/groups/"+group.ID.Hex(), `{"name":"Oak Ave Team"}`), testutil.UserFor(creator))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleRenameGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	if got := decodeGroup(t, rec); got.Name != "Oak Ave Team" {
		t.Errorf("rename not applied: %q", got.Name)
	}

	// An empty name is a no-op, not an error.
	rec = testutil.NewRecorder()
	req = testutil.WithUser(testutil.NewJSONRequest(http.MethodPut, "/groups/"+group.ID.Hex(), `{}`), testutil.UserFor(creator))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleRenameGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	if got := decodeGroup(t, rec); got.Name != "Oak Ave Team" {
		t.Errorf("empty rename changed the name: %q", got.Name)
	}
}

func TestHandleDeleteGroup(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")
	member := fx.CreateUser(ctx, "Member", "member@example.com")
	group := fx.CreateGroupWithMembers(ctx, "Maple St Team", creator.ID, member.ID)

	// Members cannot delete.
	rec := testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/groups/"+group.ID.Hex()), testutil.UserFor(member))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleDeleteGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// The creator deletes it.
	rec = testutil.NewRecorder()
	req = testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/groups/"+group.ID.Hex()), testutil.UserFor(creator))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleDeleteGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// A subsequent get is NotFound, and so is a second delete.
	rec = testutil.NewRecorder()
	req = testutil.WithUser(testutil.NewRequest(http.MethodGet, "/groups/"+group.ID.Hex()), testutil.UserFor(creator))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.ServeGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)

	rec = testutil.NewRecorder()
	req = testutil.WithUser(testutil.NewRequest(http.MethodDelete, "/groups/"+group.ID.Hex()), testutil.UserFor(creator))
	req = testutil.WithChiURLParam(req, "identifier", group.ID.Hex())
	h.HandleDeleteGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreateGroup_EmptyName(t *testing.T) {
	h, _, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "Creator", "creator@example.com")

	rec := testutil.NewRecorder()
	req := testutil.WithUser(testutil.NewJSONRequest(http.MethodPost, "/groups", `{"name":""}`), testutil.UserFor(creator))
	h.HandleCreateGroup(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Group name is required")
}
