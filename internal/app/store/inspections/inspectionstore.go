// internal/app/store/inspections/inspectionstore.go
package inspectionstore

import (
	"context"

	"github.com/inspecthub/inspecthub/internal/app/system/txn"
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
	return &Store{c: db.Collection("inspections")}
}

func (s *Store) Insert(ctx context.Context, i models.Inspection) error {
	if _, err := s.c.InsertOne(ctx, i); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Inspection, error) {
	var i models.Inspection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Inspection{}, apperr.E(apperr.NotFound, "Inspection not found")
		}
		return models.Inspection{}, apperr.Storage(err)
	}
	return i, nil
}

// ListByGroup returns the group's inspections, soonest scheduled first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Inspection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var inspections []models.Inspection
	if err := cur.All(ctx, &inspections); err != nil {
		return nil, apperr.Storage(err)
	}
	return inspections, nil
}

// Replace writes the aggregate back under its version guard; see the group
// store's Replace for the protocol.
func (s *Store) Replace(ctx context.Context, i *models.Inspection) error {
	loadedVersion := i.Version
	i.Version = loadedVersion + 1
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": i.ID, "version": loadedVersion}, i)
	if err != nil {
		i.Version = loadedVersion
		return apperr.Storage(err)
	}
	if res.MatchedCount == 0 {
		i.Version = loadedVersion
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": i.ID})
		if err != nil {
			return apperr.Storage(err)
		}
		if n == 0 {
			return apperr.E(apperr.NotFound, "Inspection not found")
		}
		return txn.ErrStale
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.NotFound, "Inspection not found")
	}
	return nil
}
