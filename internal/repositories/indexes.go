package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IntroductionCollection  = "introductions"
	NotificationCollection  = "notifications"
	CompanyCollection       = "companies"
	CompanyMemberCollection = "company_members"
)

// EnsureIndexes creates the lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		IntroductionCollection: {
			{Keys: bson.D{{Key: "introduction_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "individual_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		NotificationCollection: {
			{Keys: bson.D{{Key: "notification_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CompanyCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "company_name", Value: 1}}},
		},
		CompanyMemberCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", name, err)
		}
	}
	return nil
}
