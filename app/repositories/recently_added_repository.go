package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
)

// RecentlyAddedRepository handles the bounded "recently added" feed.
// The TTL index on createdAt handles the age bound; Trim handles the count
// bound after inserts and from the scheduled sweep.
type RecentlyAddedRepository struct {
	col *mongo.Collection
	max int64
}

func NewRecentlyAddedRepository(db *mongo.Database, max int64) *RecentlyAddedRepository {
	return &RecentlyAddedRepository{col: db.Collection("recentlyAdded"), max: max}
}

// Insert appends a feed entry for a product and trims the collection back
// to the count cap.
func (r *RecentlyAddedRepository) Insert(ctx context.Context, productID primitive.ObjectID) error {
	defer metrics.ObserveQuery("recentlyAdded", "insertOne", time.Now())

	entry := models.RecentlyAddedEntry{
		Product:   productID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("recentlyAdded: insert: %w", err)
	}
	return r.Trim(ctx)
}

// Trim deletes the oldest entries beyond the count cap.
func (r *RecentlyAddedRepository) Trim(ctx context.Context) error {
	defer metrics.ObserveQuery("recentlyAdded", "trim", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("recentlyAdded: count: %w", err)
	}
	excess := n - r.max
	if excess <= 0 {
		return nil
	}

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: 1}}).
			SetLimit(excess).
			SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return fmt.Errorf("recentlyAdded: find oldest: %w", err)
	}
	var oldest []models.RecentlyAddedEntry
	if err := cur.All(ctx, &oldest); err != nil {
		return fmt.Errorf("recentlyAdded: decode oldest: %w", err)
	}

	ids := make([]primitive.ObjectID, len(oldest))
	for i, e := range oldest {
		ids[i] = e.ID
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("recentlyAdded: trim: %w", err)
	}
	return nil
}

// Feed returns the referenced products, newest first. Entries whose product
// has vanished are dropped by the inner unwind.
func (r *RecentlyAddedRepository) Feed(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveQuery("recentlyAdded", "aggregate", time.Now())

	pipeline := []bson.M{
		{"$sort": bson.M{"createdAt": -1}},
		{"$lookup": bson.M{
			"from":         "products",
			"localField":   "product",
			"foreignField": "_id",
			"as":           "product_doc",
		}},
		{"$unwind": "$product_doc"},
		{"$replaceRoot": bson.M{"newRoot": "$product_doc"}},
		{"$project": bson.M{"searchable_details_string": 0}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("recentlyAdded: aggregate: %w", err)
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("recentlyAdded: decode: %w", err)
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// DeleteByProduct removes every feed entry referencing a product. Called
// before the product itself is deleted.
func (r *RecentlyAddedRepository) DeleteByProduct(ctx context.Context, productID primitive.ObjectID) error {
	defer metrics.ObserveQuery("recentlyAdded", "deleteMany", time.Now())

	if _, err := r.col.DeleteMany(ctx, bson.M{"product": productID}); err != nil {
		return fmt.Errorf("recentlyAdded: delete by product: %w", err)
	}
	return nil
}
