package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/pkg/cache"
	"github.com/Kantor012/Product-Catalog/pkg/collection"
	"github.com/Kantor012/Product-Catalog/pkg/event"
	"github.com/Kantor012/Product-Catalog/pkg/metrics"
)

const (
	// PromotionalCacheKey caches the promotional list; busted on mutations.
	PromotionalCacheKey = "products:promotional"
	promotionalCacheTTL = 30 * time.Second

	recommendationLimit = 5
)

// ProductService implements the product business rules: search, CRUD,
// embedded review aggregation, and the recently-added side effects.
type ProductService struct {
	products   ProductStore
	categories CategoryStore
	recent     RecentlyAddedStore
}

func NewProductService(products ProductStore, categories CategoryStore, recent RecentlyAddedStore) *ProductService {
	return &ProductService{products: products, categories: categories, recent: recent}
}

// ProductInput carries the mutable product fields from create/replace
// requests.
type ProductInput struct {
	Name             string            `json:"name" validate:"required,min=2"`
	Price            float64           `json:"price" validate:"required,gte=0"`
	Description      string            `json:"description" validate:"required"`
	ImageURL         string            `json:"imageUrl" validate:"nullable"`
	Category         string            `json:"category" validate:"required"`
	Details          map[string]string `json:"details" validate:"nullable"`
	IsPromotional    bool              `json:"isPromotional" validate:"nullable,boolean"`
	PromotionalPrice *float64          `json:"promotionalPrice" validate:"nullable"`
}

// promotionalPrice is non-null only while the product is actually on
// promotion.
func (in ProductInput) promotionalPrice() *float64 {
	if in.IsPromotional && in.PromotionalPrice != nil {
		return in.PromotionalPrice
	}
	return nil
}

// Search runs the listing pipeline with the raw query-string filter.
func (s *ProductService) Search(ctx context.Context, f repositories.SearchFilter) ([]models.Product, error) {
	return s.products.Search(ctx, f)
}

// AllForAdmin returns the full joined catalog for the admin table.
func (s *ProductService) AllForAdmin(ctx context.Context) ([]models.Product, error) {
	return s.products.AllWithCategory(ctx)
}

// Promotional returns products on promotion, served from cache when warm.
func (s *ProductService) Promotional(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(PromotionalCacheKey, &cached) {
		metrics.CacheHits.WithLabelValues(PromotionalCacheKey).Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues(PromotionalCacheKey).Inc()

	out, err := s.products.Promotional(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(PromotionalCacheKey, out, promotionalCacheTTL)
	return out, nil
}

// Get returns one product with its category joined.
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}
	return s.products.FindByIDWithCategory(ctx, oid)
}

// Recommendations returns up to five products sharing the category.
func (s *ProductService) Recommendations(ctx context.Context, id string) ([]models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	base, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.products.Recommendations(ctx, base.Category, base.ID, recommendationLimit)
}

// Create inserts a product, appends it to the recently-added feed, and
// returns the joined document. The image URL is a generated placeholder
// built from the brand (first word of the name) and the category.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	catID, err := primitive.ObjectIDFromHex(in.Category)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}

	categoryName := ""
	if cat, err := s.categories.FindByID(ctx, catID); err == nil {
		categoryName = cat.Name
	}

	p := models.Product{
		Name:             in.Name,
		Price:            in.Price,
		Description:      in.Description,
		ImageURL:         models.PlaceholderImageURL(in.Name, categoryName),
		Category:         catID,
		Details:          orEmptyDetails(in.Details),
		IsPromotional:    in.IsPromotional,
		PromotionalPrice: in.promotionalPrice(),
		Reviews:          []models.Review{},
		Rating:           0,
		NumReviews:       0,
		CreatedAt:        time.Now().UTC(),
		SearchableText:   models.SearchableString(in.Details),
	}

	if err := s.products.Insert(ctx, &p); err != nil {
		return models.Product{}, err
	}
	if err := s.recent.Insert(ctx, p.ID); err != nil {
		return models.Product{}, err
	}

	joined, err := s.products.FindByIDWithCategory(ctx, p.ID)
	if err != nil {
		return models.Product{}, err
	}

	event.Fire(event.ProductCreated, joined)
	return joined, nil
}

// Replace overwrites every mutable field of a product.
func (s *ProductService) Replace(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}
	catID, err := primitive.ObjectIDFromHex(in.Category)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}

	fields := bson.M{
		"name":                      in.Name,
		"price":                     in.Price,
		"description":               in.Description,
		"imageUrl":                  in.ImageURL,
		"category":                  catID,
		"details":                   orEmptyDetails(in.Details),
		"isPromotional":             in.IsPromotional,
		"promotionalPrice":          in.promotionalPrice(),
		"searchable_details_string": models.SearchableString(in.Details),
	}
	if err := s.products.Update(ctx, oid, fields); err != nil {
		return models.Product{}, err
	}

	updated, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return models.Product{}, err
	}

	event.Fire(event.ProductUpdated, updated)
	return updated, nil
}

// Patch applies a raw partial update. The _id is stripped so clients cannot
// rewrite the primary key.
func (s *ProductService) Patch(ctx context.Context, id string, fields map[string]interface{}) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}

	delete(fields, "_id")
	if len(fields) == 0 {
		return s.products.FindByID(ctx, oid)
	}

	if err := s.products.Update(ctx, oid, bson.M(fields)); err != nil {
		return models.Product{}, err
	}

	updated, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return models.Product{}, err
	}

	event.Fire(event.ProductUpdated, updated)
	return updated, nil
}

// Delete removes a product and its recently-added entries. The feed entries
// go first so a concurrent feed read never resolves a dangling reference.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	if err := s.recent.DeleteByProduct(ctx, oid); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}

	event.Fire(event.ProductDeleted, oid.Hex())
	return nil
}

// SetImageURL points a product at a newly stored image.
func (s *ProductService) SetImageURL(ctx context.Context, id, url string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if err := s.products.Update(ctx, oid, bson.M{"imageUrl": url}); err != nil {
		return err
	}
	event.Fire(event.ProductUpdated, oid.Hex())
	return nil
}

// AddReview appends a review and recomputes the rating aggregates from the
// full embedded list. Non-admin users get one review per product; admins
// may post repeatedly.
func (s *ProductService) AddReview(ctx context.Context, productID string, reviewer models.User, rating float64, comment string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return err
	}

	if !reviewer.IsAdmin {
		already := collection.Contains(p.Reviews, func(r models.Review) bool {
			return r.User == reviewer.ID
		})
		if already {
			return ErrAlreadyReviewed
		}
	}

	reviews := append(p.Reviews, models.Review{
		ID:        primitive.NewObjectID(),
		Name:      reviewer.Name,
		Rating:    rating,
		Comment:   comment,
		User:      reviewer.ID,
		CreatedAt: time.Now().UTC(),
	})

	return s.saveReviews(ctx, oid, reviews)
}

// DeleteReview filters one review out and recomputes the aggregates from
// the remaining list.
func (s *ProductService) DeleteReview(ctx context.Context, productID, reviewID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	p, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return err
	}

	remaining := collection.Reject(p.Reviews, func(r models.Review) bool {
		return r.ID.Hex() == reviewID
	})
	if remaining == nil {
		remaining = []models.Review{}
	}

	return s.saveReviews(ctx, oid, remaining)
}

// ClearReviews drops every review and zeroes the aggregates.
func (s *ProductService) ClearReviews(ctx context.Context, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	if _, err := s.products.FindByID(ctx, oid); err != nil {
		return err
	}
	return s.saveReviews(ctx, oid, []models.Review{})
}

// saveReviews writes the review list and the aggregates derived from it.
// The rating is always recomputed from the full list, never incrementally,
// and defaults to 0 when the list is empty.
func (s *ProductService) saveReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review) error {
	rating := collection.Average(reviews, func(r models.Review) float64 { return r.Rating })
	if err := s.products.SetReviews(ctx, id, reviews, rating, len(reviews)); err != nil {
		return err
	}
	event.Fire(event.ProductUpdated, id.Hex())
	return nil
}

func orEmptyDetails(details map[string]string) map[string]string {
	if details == nil {
		return map[string]string{}
	}
	return details
}
