// Package services holds the business rules between controllers and
// repositories. Services return sentinel errors for rule violations; their
// messages are what the API reports back to the client.
//
// Each service depends on a narrow store interface rather than a concrete
// repository, the same way middleware.UserLoader decouples auth from the
// user repository. The repositories package satisfies all of them.
package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/repositories"
)

// ProductStore is the product persistence surface the services use.
// Implemented by repositories.ProductRepository.
type ProductStore interface {
	Search(ctx context.Context, f repositories.SearchFilter) ([]models.Product, error)
	AllWithCategory(ctx context.Context) ([]models.Product, error)
	Promotional(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByIDWithCategory(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Recommendations(ctx context.Context, category, exclude primitive.ObjectID, limit int64) ([]models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error
	CountByCategory(ctx context.Context, category primitive.ObjectID) (int64, error)
}

// CategoryStore is the category persistence surface.
// Implemented by repositories.CategoryRepository.
type CategoryStore interface {
	All(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	FindByName(ctx context.Context, name string) (models.Category, error)
	Insert(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the user persistence surface.
// Implemented by repositories.UserRepository.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindFullByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByVerificationToken(ctx context.Context, token string) (models.User, error)
	All(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountAdmins(ctx context.Context) (int64, error)
}

// RecentlyAddedStore is the feed persistence surface.
// Implemented by repositories.RecentlyAddedRepository.
type RecentlyAddedStore interface {
	Insert(ctx context.Context, productID primitive.ObjectID) error
	Trim(ctx context.Context) error
	Feed(ctx context.Context) ([]models.Product, error)
	DeleteByProduct(ctx context.Context, productID primitive.ObjectID) error
}

var (
	// ErrInvalidID is returned when a path or body id is not a valid ObjectID.
	ErrInvalidID = errors.New("Invalid id")

	ErrAlreadyReviewed = errors.New("Product already reviewed")

	ErrDuplicateCategory = errors.New("Category already exists")
	ErrCategoryInUse     = errors.New("Cannot delete category. It is used by existing products.")

	ErrDuplicateEmail      = errors.New("User already exists")
	ErrDuplicateAdminEmail = errors.New("User with this email already exists")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrNotVerified         = errors.New("Please verify your email first.")
	ErrInvalidToken        = errors.New("Invalid verification token.")
	ErrLastAdminDemote     = errors.New("Cannot remove admin status from the last administrator.")
	ErrLastAdminDelete     = errors.New("Cannot delete the last administrator.")
)
