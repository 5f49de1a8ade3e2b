// internal/app/store/groups/groupstore.go
package groupstore

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
	return &Store{c: db.Collection("groups")}
}

// Insert persists a freshly built group aggregate at version zero.
func (s *Store) Insert(ctx context.Context, g models.Group) error {
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.E(apperr.NotFound, "Group not found")
		}
		return models.Group{}, apperr.Storage(err)
	}
	return g, nil
}

// GetByCreator returns the group created by the given user. Groups are
// addressable by their creator's email; this is the second half of that
// lookup.
func (s *Store) GetByCreator(ctx context.Context, creatorID primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"creator_id": creatorID}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, apperr.E(apperr.NotFound, "Group not found")
		}
		return models.Group{}, apperr.Storage(err)
	}
	return g, nil
}

// ListForMember returns every group whose member set contains userID,
// newest first.
func (s *Store) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"member_ids": userID}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, apperr.Storage(err)
	}
	return groups, nil
}

// Replace writes the whole aggregate back, guarded by the version it was
// loaded at. A write that matches nothing either lost a race (txn.ErrStale,
// the caller retries on a fresh snapshot) or the group is gone.
func (s *Store) Replace(ctx context.Context, g *models.Group) error {
	loadedVersion := g.Version
	g.Version = loadedVersion + 1
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": g.ID, "version": loadedVersion}, g)
	if err != nil {
		g.Version = loadedVersion
		return apperr.Storage(err)
	}
	if res.MatchedCount == 0 {
		g.Version = loadedVersion
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": g.ID})
		if err != nil {
			return apperr.Storage(err)
		}
		if n == 0 {
			return apperr.E(apperr.NotFound, "Group not found")
		}
		return txn.ErrStale
	}
	return nil
}

// Delete removes the aggregate. Inspections keep their (now dangling) group
// reference; that is the documented policy, not cleanup debt.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.NotFound, "Group not found")
	}
	return nil
}
