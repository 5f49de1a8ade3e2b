// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
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
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user. The unique email index reports duplicates.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, apperr.E(apperr.Conflict, "User already exists")
		}
		return models.User{}, apperr.Storage(err)
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, apperr.E(apperr.NotFound, "User not found")
		}
		return models.User{}, apperr.Storage(err)
	}
	return u, nil
}

// GetByEmail looks a user up by exact email match.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, apperr.E(apperr.NotFound, "User not found")
		}
		return models.User{}, apperr.Storage(err)
	}
	return u, nil
}

// GetManyByIDs returns the users that still exist for the given ids, in the
// order the ids appear. Ids whose user document is gone are silently
// omitted; callers expanding member or attendee lists rely on that.
func (s *Store) GetManyByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.User, len(ids))
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, apperr.Storage(err)
		}
		byID[u.ID] = u
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Storage(err)
	}

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// List returns all users sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

// Search matches query case-insensitively against name and email.
func (s *Store) Search(ctx context.Context, query string) ([]models.User, error) {
	rx := primitive.Regex{Pattern: regexQuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": rx},
		bson.M{"email": rx},
	}}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}

// UpdateProfile overwrites the provided fields; empty values leave the
// stored field unchanged. Email uniqueness is enforced by the index.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email, passwordHash string) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if email != "" {
		set["email"] = email
	}
	if passwordHash != "" {
		set["password_hash"] = passwordHash
	}

	var u models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, apperr.E(apperr.NotFound, "User not found")
		}
		if wafflemongo.IsDup(err) {
			return models.User{}, apperr.E(apperr.Conflict, "Email already in use")
		}
		return models.User{}, apperr.Storage(err)
	}
	return u, nil
}

// Delete removes the user document. No cascade: references held by groups
// and inspections are left dangling on purpose.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Storage(err)
	}
	if res.DeletedCount == 0 {
		return apperr.E(apperr.NotFound, "User not found")
	}
	return nil
}

// regexQuoteMeta escapes regex metacharacters so search input is matched
// literally.
func regexQuoteMeta(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		for j := 0; j < len(meta); j++ {
			if b == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, b)
	}
	return string(out)
}
