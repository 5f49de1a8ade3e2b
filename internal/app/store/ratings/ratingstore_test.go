package ratingstore

import (
	"testing"

	"github.com/inspecthub/inspecthub/internal/app/system/indexes"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"github.com/inspecthub/inspecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInsert_OneRatingPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := New(db)

	inspection := primitive.NewObjectID()
	user := primitive.NewObjectID()

	first, _ := models.NewRating(inspection, user, 4, "solid roof")
	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	second, _ := models.NewRating(inspection, user, 2, "changed my mind")
	if err := store.Insert(ctx, second); apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("expected Conflict, got %v", err)
	}

	// A different user may still rate.
	other, _ := models.NewRating(inspection, primitive.NewObjectID(), 5, "")
	if err := store.Insert(ctx, other); err != nil {
		t.Errorf("other user's rating failed: %v", err)
	}
}

func TestListByInspection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := New(db)

	inspection := primitive.NewObjectID()
	for i := 1; i <= 3; i++ {
		r, _ := models.NewRating(inspection, primitive.NewObjectID(), i, "")
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	otherRating, _ := models.NewRating(primitive.NewObjectID(), primitive.NewObjectID(), 5, "")
	_ = store.Insert(ctx, otherRating)

	list, err := store.ListByInspection(ctx, inspection)
	if err != nil {
		t.Fatalf("ListByInspection failed: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 ratings, got %d", len(list))
	}
}
