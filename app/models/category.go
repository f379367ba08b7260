package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is a product category. Name is unique (enforced by index).
// Deletion is blocked at the service layer while products reference it.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}
