package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection("categories")}
}

// All returns every category.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveQuery("categories", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("categories: find: %w", err)
	}
	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("categories: decode: %w", err)
	}
	if out == nil {
		out = []models.Category{}
	}
	return out, nil
}

// FindByID returns one category, or ErrNotFound.
func (r *CategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	defer metrics.ObserveQuery("categories", "findOne", time.Now())

	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("categories: find %s: %w", id.Hex(), err)
	}
	return c, nil
}

// FindByName looks a category up by its unique name.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (models.Category, error) {
	defer metrics.ObserveQuery("categories", "findOne", time.Now())

	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("categories: find by name: %w", err)
	}
	return c, nil
}

// Insert persists a new category and fills in its generated ID.
func (r *CategoryRepository) Insert(ctx context.Context, c *models.Category) error {
	defer metrics.ObserveQuery("categories", "insertOne", time.Now())

	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("categories: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// Update renames one category.
func (r *CategoryRepository) Update(ctx context.Context, id primitive.ObjectID, name string) error {
	defer metrics.ObserveQuery("categories", "updateOne", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return fmt.Errorf("categories: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one category.
func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("categories", "deleteOne", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("categories: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
