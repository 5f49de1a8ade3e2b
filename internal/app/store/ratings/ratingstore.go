// internal/app/store/ratings/ratingstore.go
package ratingstore

import (
	"context"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ratings")}
}

// Insert persists a rating. The unique (inspection_id, user_id) index turns
// a second rating by the same user into a Conflict.
func (s *Store) Insert(ctx context.Context, r models.Rating) error {
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return apperr.E(apperr.Conflict, "You have already rated this inspection")
		}
		return apperr.Storage(err)
	}
	return nil
}

// ListByInspection returns the inspection's ratings, newest first.
func (s *Store) ListByInspection(ctx context.Context, inspectionID primitive.ObjectID) ([]models.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"inspection_id": inspectionID}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var ratings []models.Rating
	if err := cur.All(ctx, &ratings); err != nil {
		return nil, apperr.Storage(err)
	}
	return ratings, nil
}
