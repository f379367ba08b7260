package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/repositories"
	"github.com/Kantor012/Product-Catalog/app/services"
)

type categoryStoreStub struct {
	services.CategoryStore

	byName    models.Category
	byNameErr error
	inserted  []models.Category
	deleted   []primitive.ObjectID
}

func (s *categoryStoreStub) FindByName(context.Context, string) (models.Category, error) {
	return s.byName, s.byNameErr
}

func (s *categoryStoreStub) Insert(_ context.Context, c *models.Category) error {
	c.ID = primitive.NewObjectID()
	s.inserted = append(s.inserted, *c)
	return nil
}

func (s *categoryStoreStub) Delete(_ context.Context, id primitive.ObjectID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestDeleteCategoryInUseRefused(t *testing.T) {
	store := &categoryStoreStub{}
	svc := services.NewCategoryService(store, &productStoreStub{inUse: 3})

	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, services.ErrCategoryInUse)
	assert.Empty(t, store.deleted)
}

func TestDeleteUnusedCategory(t *testing.T) {
	store := &categoryStoreStub{}
	svc := services.NewCategoryService(store, &productStoreStub{inUse: 0})

	oid := primitive.NewObjectID()
	require.NoError(t, svc.Delete(context.Background(), oid.Hex()))

	assert.Equal(t, []primitive.ObjectID{oid}, store.deleted)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	store := &categoryStoreStub{byName: models.Category{ID: primitive.NewObjectID(), Name: "Laptops"}}
	svc := services.NewCategoryService(store, nil)

	_, err := svc.Create(context.Background(), "Laptops")

	assert.ErrorIs(t, err, services.ErrDuplicateCategory)
	assert.Empty(t, store.inserted)
}

func TestCreateUnusedName(t *testing.T) {
	store := &categoryStoreStub{byNameErr: repositories.ErrNotFound}
	svc := services.NewCategoryService(store, nil)

	c, err := svc.Create(context.Background(), "Drones")

	require.NoError(t, err)
	assert.Equal(t, "Drones", c.Name)
	assert.False(t, c.ID.IsZero())
	assert.Len(t, store.inserted, 1)
}
