package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kantor012/Product-Catalog/config"
	"github.com/Kantor012/Product-Catalog/database/seeders"
	"github.com/Kantor012/Product-Catalog/pkg/database"
)

// withDB loads config, opens the database, runs fn, and disconnects.
func withDB(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = client.Disconnect(dctx)
	}()

	return fn(ctx, db)
}

// catalog db:index — create the indexes the catalog relies on.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create database indexes (text search, TTL, unique constraints)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			fmt.Println("Creating indexes…")
			return database.EnsureIndexes(ctx, db)
		})
	},
}

// catalog db:seed — populate demo data.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Wipe and repopulate the database with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			fmt.Println("Running seeders…")
			return seeders.RunAll(ctx, db)
		})
	},
}
