// Package bootstrap prepares the database at process start.
package bootstrap

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the repositories query on. Safe to run
// on every start; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := db.Collection("queries")
	if _, err := queries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// owner history, newest first
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		// officer dashboards
		{Keys: bson.D{{Key: "escalated", Value: 1}, {Key: "resolved", Value: 1}, {Key: "escalated_at", Value: -1}}},
		{Keys: bson.D{{Key: "officer_id", Value: 1}, {Key: "officer_updated_at", Value: -1}}},
	}); err != nil {
		return err
	}

	users := db.Collection("users")
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	posts := db.Collection("posts")
	if _, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
	}); err != nil {
		return err
	}

	comments := db.Collection("comments")
	_, err := comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
