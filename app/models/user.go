package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an account document. Password holds the bcrypt hash and is never
// serialised. VerificationToken is unset once the email is verified.
//
// Invariant maintained by UserService: at least one user carries IsAdmin at
// all times.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	IsAdmin           bool               `bson:"isAdmin" json:"isAdmin"`
	IsVerified        bool               `bson:"isVerified" json:"isVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty" json:"-"`
}
