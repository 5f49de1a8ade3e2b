// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation is idempotent; errors are
aggregated so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureInspections(ctx, db); err != nil {
		problems = append(problems, "inspections: "+err.Error())
	}
	if err := ensureRatings(ctx, db); err != nil {
		problems = append(problems, "ratings: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_name_ci"),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// Creator-email group resolution lands here after the user lookup.
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("idx_groups_creator"),
		},
		// "List my groups" scans by member set.
		{
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_groups_members"),
		},
	})
	return err
}

func ensureInspections(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("inspections").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("idx_inspections_group_time"),
		},
	})
	return err
}

func ensureRatings(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("ratings").Indexes().CreateMany(ctx, []mongo.IndexModel{
		// One rating per (inspection, user); the store maps the duplicate
		// key error to Conflict.
		{
			Keys:    bson.D{{Key: "inspection_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_ratings_inspection_user").SetUnique(true),
		},
	})
	return err
}
