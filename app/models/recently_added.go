package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecentlyAddedEntry references a product in the bounded "recently added"
// feed. Entries expire via a TTL index on CreatedAt; the count cap is
// enforced by the repository.
type RecentlyAddedEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
