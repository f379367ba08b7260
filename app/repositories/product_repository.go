package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

// SearchFilter carries the raw query-string values of a product search.
// Malformed values are ignored individually rather than rejected.
type SearchFilter struct {
	Keyword  string
	Category string
	MinPrice string
	MaxPrice string
	Sort     string // "field" or "field_dir"; any suffix but "asc" sorts descending
}

// categoryLookup joins category_details onto each product. The join is a
// left join: a product whose category is missing keeps a null
// category_details instead of being dropped.
func categoryLookup() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "category_details",
		}},
		{"$unwind": bson.M{
			"path":                       "$category_details",
			"preserveNullAndEmptyArrays": true,
		}},
	}
}

// Search runs the listing aggregation: text/category match, effective-price
// derivation and range filter, sort, category join, and projection of the
// internal fields.
func (r *ProductRepository) Search(ctx context.Context, f SearchFilter) ([]models.Product, error) {
	defer metrics.ObserveQuery("products", "aggregate", time.Now())

	match := bson.M{}
	if f.Keyword != "" {
		match["$text"] = bson.M{"$search": f.Keyword}
	}
	if f.Category != "" {
		if catID, err := primitive.ObjectIDFromHex(f.Category); err == nil {
			match["category"] = catID
		}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$addFields": bson.M{
			"effectivePrice": bson.M{"$cond": bson.M{
				"if": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$isPromotional", true}},
					bson.M{"$ne": bson.A{"$promotionalPrice", nil}},
				}},
				"then": "$promotionalPrice",
				"else": "$price",
			}},
		}},
	}

	priceMatch := bson.M{}
	if min, err := strconv.ParseFloat(f.MinPrice, 64); err == nil {
		priceMatch["$gte"] = min
	}
	if max, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
		priceMatch["$lte"] = max
	}
	if len(priceMatch) > 0 {
		pipeline = append(pipeline, bson.M{"$match": bson.M{"effectivePrice": priceMatch}})
	}

	pipeline = append(pipeline, bson.M{"$sort": sortStage(f)})
	pipeline = append(pipeline, categoryLookup()...)
	pipeline = append(pipeline, bson.M{"$project": bson.M{
		"effectivePrice":            0,
		"searchable_details_string": 0,
	}})

	return r.aggregate(ctx, pipeline)
}

// sortStage builds the $sort document. Relevance wins when a keyword is
// present; then the requested field; createdAt descending when no sort is
// requested at all.
func sortStage(f SearchFilter) bson.D {
	sort := bson.D{}
	if f.Keyword != "" {
		sort = append(sort, bson.E{Key: "score", Value: bson.M{"$meta": "textScore"}})
	}
	if field, dir, ok := parseSort(f.Sort); ok {
		sort = append(sort, bson.E{Key: field, Value: dir})
	}
	if len(sort) == 0 {
		sort = append(sort, bson.E{Key: "createdAt", Value: -1})
	}
	return sort
}

// parseSort is lenient: a bare field name or any suffix other than "asc"
// sorts descending by that field.
func parseSort(s string) (field string, dir int, ok bool) {
	if s == "" {
		return "", 0, false
	}
	field, dir = s, -1
	if idx := strings.LastIndexByte(s, '_'); idx > 0 {
		field = s[:idx]
		if s[idx+1:] == "asc" {
			dir = 1
		}
	}
	// Sort on the derived price so promotions order by what customers pay.
	if field == "price" {
		field = "effectivePrice"
	}
	return field, dir, true
}

// AllWithCategory returns every product with the category join applied.
func (r *ProductRepository) AllWithCategory(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveQuery("products", "aggregate", time.Now())

	pipeline := append([]bson.M{}, categoryLookup()...)
	pipeline = append(pipeline, bson.M{"$project": bson.M{
		"searchable_details_string": 0,
	}})
	return r.aggregate(ctx, pipeline)
}

// Promotional returns products currently flagged promotional.
func (r *ProductRepository) Promotional(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveQuery("products", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"isPromotional": true})
	if err != nil {
		return nil, fmt.Errorf("products: find promotional: %w", err)
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode promotional: %w", err)
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// FindByID fetches a bare product document without the category join.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	defer metrics.ObserveQuery("products", "findOne", time.Now())

	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("products: find %s: %w", id.Hex(), err)
	}
	return p, nil
}

// FindByIDWithCategory fetches one product with category_details joined.
func (r *ProductRepository) FindByIDWithCategory(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	defer metrics.ObserveQuery("products", "aggregate", time.Now())

	pipeline := []bson.M{{"$match": bson.M{"_id": id}}}
	pipeline = append(pipeline, categoryLookup()...)
	pipeline = append(pipeline, bson.M{"$project": bson.M{
		"searchable_details_string": 0,
	}})

	out, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return models.Product{}, err
	}
	if len(out) == 0 {
		return models.Product{}, ErrNotFound
	}
	return out[0], nil
}

// Recommendations returns up to limit products sharing the category,
// excluding the product itself.
func (r *ProductRepository) Recommendations(ctx context.Context, category, exclude primitive.ObjectID, limit int64) ([]models.Product, error) {
	defer metrics.ObserveQuery("products", "find", time.Now())

	cur, err := r.col.Find(ctx,
		bson.M{"category": category, "_id": bson.M{"$ne": exclude}},
		options.Find().SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("products: find recommendations: %w", err)
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode recommendations: %w", err)
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// Insert persists a new product and fills in its generated ID.
func (r *ProductRepository) Insert(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveQuery("products", "insertOne", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("products: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update applies a $set of fields to one product. ErrNotFound when the id
// matches nothing.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	defer metrics.ObserveQuery("products", "updateOne", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("products: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one product.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("products", "deleteOne", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetReviews replaces the embedded review list and its derived aggregates
// in one write.
func (r *ProductRepository) SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error {
	return r.Update(ctx, id, bson.M{
		"reviews":    reviews,
		"rating":     rating,
		"numReviews": numReviews,
	})
}

// CountByCategory reports how many products reference a category. Used to
// block category deletion while references remain.
func (r *ProductRepository) CountByCategory(ctx context.Context, category primitive.ObjectID) (int64, error) {
	defer metrics.ObserveQuery("products", "count", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, fmt.Errorf("products: count by category: %w", err)
	}
	return n, nil
}

func (r *ProductRepository) aggregate(ctx context.Context, pipeline []bson.M) ([]models.Product, error) {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("products: aggregate: %w", err)
	}
	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}
