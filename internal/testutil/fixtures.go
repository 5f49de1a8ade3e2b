package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Parameters accumulate across calls, so routes with several path
// segments can be set up one parameter at a time.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: "$2a$10$test.hash.not.a.real.credential.000000000000000000000",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a test group with the creator as sole member.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID) models.Group {
	f.t.Helper()

	group, err := models.NewGroup(creatorID, name)
	if err != nil {
		f.t.Fatalf("failed to build test group: %v", err)
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateGroupWithMembers creates a test group and appends the extra members.
func (f *Fixtures) CreateGroupWithMembers(ctx context.Context, name string, creatorID primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	group, err := models.NewGroup(creatorID, name)
	if err != nil {
		f.t.Fatalf("failed to build test group: %v", err)
	}
	group.MemberIDs = append(group.MemberIDs, members...)
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateInspection creates a test inspection for the given group.
func (f *Fixtures) CreateInspection(ctx context.Context, groupID, creatorID primitive.ObjectID, address string, scheduledAt time.Time) models.Inspection {
	f.t.Helper()

	insp, err := models.NewInspection(creatorID, groupID, address, scheduledAt)
	if err != nil {
		f.t.Fatalf("failed to build test inspection: %v", err)
	}
	if _, err := f.db.Collection("inspections").InsertOne(ctx, insp); err != nil {
		f.t.Fatalf("failed to create test inspection: %v", err)
	}
	return insp
}

// CreateRating creates a test rating for the given inspection.
func (f *Fixtures) CreateRating(ctx context.Context, inspectionID, userID primitive.ObjectID, stars int) models.Rating {
	f.t.Helper()

	rating, err := models.NewRating(inspectionID, userID, stars, "")
	if err != nil {
		f.t.Fatalf("failed to build test rating: %v", err)
	}
	if _, err := f.db.Collection("ratings").InsertOne(ctx, rating); err != nil {
		f.t.Fatalf("failed to create test rating: %v", err)
	}
	return rating
}
