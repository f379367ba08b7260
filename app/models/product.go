package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog product document. Reviews are embedded: a review
// lives and dies with its parent product.
//
// Invariants maintained by ProductService:
//   - Rating is the arithmetic mean of Reviews' ratings (0 when empty).
//   - NumReviews equals len(Reviews).
type Product struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name             string              `bson:"name" json:"name"`
	Price            float64             `bson:"price" json:"price"`
	Description      string              `bson:"description" json:"description"`
	ImageURL         string              `bson:"imageUrl" json:"imageUrl"`
	Category         primitive.ObjectID  `bson:"category" json:"category"`
	Details          map[string]string   `bson:"details" json:"details"`
	IsPromotional    bool                `bson:"isPromotional" json:"isPromotional"`
	PromotionalPrice *float64            `bson:"promotionalPrice" json:"promotionalPrice"`
	Reviews          []Review            `bson:"reviews" json:"reviews"`
	Rating           float64             `bson:"rating" json:"rating"`
	NumReviews       int                 `bson:"numReviews" json:"numReviews"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	SearchableText   string              `bson:"searchable_details_string" json:"-"`
	CategoryDetails  *Category           `bson:"category_details,omitempty" json:"category_details,omitempty"`
}

// Review is embedded in Product.
type Review struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// EffectivePrice is the price the shop actually charges: the promotional
// price while the promotion flag is set and a promotional price exists.
func (p Product) EffectivePrice() float64 {
	if p.IsPromotional && p.PromotionalPrice != nil {
		return *p.PromotionalPrice
	}
	return p.Price
}

// PlaceholderImageURL builds the generated product image used when no real
// photo has been uploaded yet. The text is "<Category>+<Brand>" where the
// brand is the first word of the product name and the category is
// singularized for display.
func PlaceholderImageURL(name, categoryName string) string {
	brand := ""
	if fields := strings.Fields(name); len(fields) > 0 {
		brand = fields[0]
	}

	singular := categoryName
	switch categoryName {
	case "Smartphones":
		singular = "Smartphone"
	case "TVs":
		singular = "TV"
	case "Laptops":
		singular = "Laptop"
	case "Tablets":
		singular = "Tablet"
	case "Smartwatches":
		singular = "Smartwatch"
	case "Headphones":
		singular = "Headphone"
	case "Smart Home Devices":
		singular = "Smart Home"
	}

	return "https://placehold.co/400x300/EFEFEF/333333?text=" + singular + "+" + brand
}

// SearchableString flattens the open details map into one indexable string.
// Keys are sorted so the output is deterministic.
func SearchableString(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, details[k])
	}
	return strings.Join(vals, " ")
}
