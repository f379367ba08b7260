// Package database opens the MongoDB connection and bootstraps the indexes
// the catalog relies on. The returned handle is passed explicitly to the
// repositories; there is no package-level database state.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kantor012/Product-Catalog/config"
)

// Connect opens the MongoDB client and verifies the connection with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("database: ping: %w", err)
	}

	return client, client.Database(config.MongoDatabase()), nil
}

// EnsureIndexes creates the indexes the catalog depends on. It is run at
// boot and by the db:index command; all creations are idempotent except the
// TTL index, which is dropped and re-created so a changed RECENT_TTL takes
// effect.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// recentlyAdded: time-based eviction via TTL on createdAt.
	recent := db.Collection("recentlyAdded")
	if _, err := recent.Indexes().DropOne(ctx, "createdAt_1"); err != nil {
		if !isIndexNotFound(err) {
			return fmt.Errorf("database: drop ttl index: %w", err)
		}
	}
	ttl := int32(config.RecentTTL().Seconds())
	_, err := recent.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(ttl),
	})
	if err != nil {
		return fmt.Errorf("database: ttl index: %w", err)
	}

	// products: wildcard text index so keyword search covers name,
	// description, and the denormalized details string.
	_, err = db.Collection("products").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "$**", Value: "text"}},
		Options: options.Index().SetName("ProductTextIndex"),
	})
	if err != nil {
		return fmt.Errorf("database: text index: %w", err)
	}

	// users: unique email.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: users email index: %w", err)
	}

	// categories: unique name.
	_, err = db.Collection("categories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: categories name index: %w", err)
	}

	return nil
}

func isIndexNotFound(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Name == "IndexNotFound"
	}
	return false
}
