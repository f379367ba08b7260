package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/repositories"
)

// CategoryService implements the category rules: unique names and
// referential integrity against products.
type CategoryService struct {
	categories CategoryStore
	products   ProductStore
}

func NewCategoryService(categories CategoryStore, products ProductStore) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	return s.categories.All(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, ErrInvalidID
	}
	return s.categories.FindByID(ctx, oid)
}

// Create inserts a category after checking the name is unused. The unique
// index backstops this check against races.
func (s *CategoryService) Create(ctx context.Context, name string) (models.Category, error) {
	_, err := s.categories.FindByName(ctx, name)
	if err == nil {
		return models.Category{}, ErrDuplicateCategory
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return models.Category{}, err
	}

	c := models.Category{Name: name}
	if err := s.categories.Insert(ctx, &c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, ErrInvalidID
	}
	if err := s.categories.Update(ctx, oid, name); err != nil {
		return models.Category{}, err
	}
	return s.categories.FindByID(ctx, oid)
}

// Delete removes a category unless products still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	n, err := s.products.CountByCategory(ctx, oid)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	return s.categories.Delete(ctx, oid)
}
