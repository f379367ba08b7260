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

// publicProjection strips credentials from user reads that leave the
// service layer.
var publicProjection = bson.M{"password": 0, "verificationToken": 0}

// UserRepository handles database operations for User.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert persists a new user and fills in their generated ID.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	defer metrics.ObserveQuery("users", "insertOne", time.Now())

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// FindByEmail returns the full document including the password hash. Only
// the auth flows may call this.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("users: find by email: %w", err)
	}
	return u, nil
}

// FindByID returns one user with credentials projected out.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(publicProjection)).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("users: find %s: %w", id.Hex(), err)
	}
	return u, nil
}

// FindFullByID returns one user including the password hash, for the
// profile-update flow which re-verifies nothing but rewrites credentials.
func (r *UserRepository) FindFullByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("users: find %s: %w", id.Hex(), err)
	}
	return u, nil
}

// FindPublicByHexID resolves a JWT subject to a live user document.
// Satisfies middleware.UserLoader.
func (r *UserRepository) FindPublicByHexID(ctx context.Context, id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, ErrNotFound
	}
	return r.FindByID(ctx, oid)
}

// FindByVerificationToken matches a pending email-verification token.
func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (models.User, error) {
	defer metrics.ObserveQuery("users", "findOne", time.Now())

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"verificationToken": token}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return u, ErrNotFound
	}
	if err != nil {
		return u, fmt.Errorf("users: find by token: %w", err)
	}
	return u, nil
}

// All returns every user with credentials projected out.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveQuery("users", "find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(publicProjection))
	if err != nil {
		return nil, fmt.Errorf("users: find: %w", err)
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	if out == nil {
		out = []models.User{}
	}
	return out, nil
}

// Update applies a $set of fields to one user.
func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	defer metrics.ObserveQuery("users", "updateOne", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("users: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVerified flips the verified flag and discards the token.
func (r *UserRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("users", "updateOne", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"isVerified": true},
		"$unset": bson.M{"verificationToken": ""},
	})
	if err != nil {
		return fmt.Errorf("users: mark verified %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one user.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveQuery("users", "deleteOne", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("users: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAdmins counts users carrying the admin flag. The services use it to
// keep at least one admin alive.
func (r *UserRepository) CountAdmins(ctx context.Context) (int64, error) {
	defer metrics.ObserveQuery("users", "count", time.Now())

	n, err := r.col.CountDocuments(ctx, bson.M{"isAdmin": true})
	if err != nil {
		return 0, fmt.Errorf("users: count admins: %w", err)
	}
	return n, nil
}
