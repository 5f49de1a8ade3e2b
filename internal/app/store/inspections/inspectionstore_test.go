package inspectionstore

import (
	"errors"
	"testing"
	"time"

	"github.com/inspecthub/inspecthub/internal/app/system/txn"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListByGroup_SortedBySchedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	creator := primitive.NewObjectID()
	groupID := primitive.NewObjectID()
	otherGroup := primitive.NewObjectID()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fx.CreateInspection(ctx, groupID, creator, "34 Elm St", base.AddDate(0, 1, 0))
	fx.CreateInspection(ctx, groupID, creator, "12 Oak Ave", base)
	fx.CreateInspection(ctx, otherGroup, creator, "9 Pine Rd", base)

	list, err := store.ListByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 inspections, got %d", len(list))
	}
	if list[0].Address != "12 Oak Ave" || list[1].Address != "34 Elm St" {
		t.Errorf("not sorted by schedule: %q then %q", list[0].Address, list[1].Address)
	}
}

func TestReplace_VersionGuard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	insp := fx.CreateInspection(ctx, primitive.NewObjectID(), primitive.NewObjectID(),
		"12 Oak Ave", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	first, _ := store.GetByID(ctx, insp.ID)
	second, _ := store.GetByID(ctx, insp.ID)

	if err := first.Attend(primitive.NewObjectID()); err != nil {
		t.Fatalf("Attend failed: %v", err)
	}
	if err := store.Replace(ctx, &first); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}

	_ = second.Attend(primitive.NewObjectID())
	if err := store.Replace(ctx, &second); !errors.Is(err, txn.ErrStale) {
		t.Errorf("expected ErrStale, got %v", err)
	}

	got, _ := store.GetByID(ctx, insp.ID)
	if len(got.Attendees) != 1 {
		t.Errorf("stale write applied: %d attendees", len(got.Attendees))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	store := New(db)

	insp := fx.CreateInspection(ctx, primitive.NewObjectID(), primitive.NewObjectID(),
		"12 Oak Ave", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	if err := store.Delete(ctx, insp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, insp.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
	if err := store.Delete(ctx, insp.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("second delete: expected NotFound, got %v", err)
	}
}
