package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/services"
)

// productStoreStub fakes the product store for service tests. Methods a test
// never reaches stay on the embedded interface and panic if called.
type productStoreStub struct {
	services.ProductStore

	product models.Product
	inUse   int64

	reviewsSaved  bool
	setReviews    []models.Review
	setRating     float64
	setNumReviews int

	calls *[]string
}

func (s *productStoreStub) FindByID(context.Context, primitive.ObjectID) (models.Product, error) {
	return s.product, nil
}

func (s *productStoreStub) SetReviews(_ context.Context, _ primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error {
	s.reviewsSaved = true
	s.setReviews = reviews
	s.setRating = rating
	s.setNumReviews = numReviews
	return nil
}

func (s *productStoreStub) Delete(context.Context, primitive.ObjectID) error {
	if s.calls != nil {
		*s.calls = append(*s.calls, "products")
	}
	return nil
}

func (s *productStoreStub) CountByCategory(context.Context, primitive.ObjectID) (int64, error) {
	return s.inUse, nil
}

type recentStoreStub struct {
	services.RecentlyAddedStore

	removed []primitive.ObjectID
	calls   *[]string
}

func (s *recentStoreStub) DeleteByProduct(_ context.Context, id primitive.ObjectID) error {
	s.removed = append(s.removed, id)
	if s.calls != nil {
		*s.calls = append(*s.calls, "feed")
	}
	return nil
}

func productWithReview(user primitive.ObjectID, rating float64) models.Product {
	return models.Product{
		ID: primitive.NewObjectID(),
		Reviews: []models.Review{{
			ID:     primitive.NewObjectID(),
			Name:   "First",
			Rating: rating,
			User:   user,
		}},
		Rating:     rating,
		NumReviews: 1,
	}
}

func TestAddReviewRejectsSecondReviewFromSameUser(t *testing.T) {
	reviewer := models.User{ID: primitive.NewObjectID(), Name: "Ann"}
	store := &productStoreStub{product: productWithReview(reviewer.ID, 4)}
	svc := services.NewProductService(store, nil, nil)

	err := svc.AddReview(context.Background(), store.product.ID.Hex(), reviewer, 5, "again")

	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)
	assert.False(t, store.reviewsSaved)
}

func TestAddReviewAdminMayReviewRepeatedly(t *testing.T) {
	reviewer := models.User{ID: primitive.NewObjectID(), Name: "Root", IsAdmin: true}
	store := &productStoreStub{product: productWithReview(reviewer.ID, 4)}
	svc := services.NewProductService(store, nil, nil)

	err := svc.AddReview(context.Background(), store.product.ID.Hex(), reviewer, 2, "still testing")

	require.NoError(t, err)
	assert.Len(t, store.setReviews, 2)
	assert.Equal(t, 3.0, store.setRating)
	assert.Equal(t, 2, store.setNumReviews)
}

func TestAddReviewRecomputesAggregatesFromFullList(t *testing.T) {
	other := primitive.NewObjectID()
	reviewer := models.User{ID: primitive.NewObjectID(), Name: "Ben"}
	store := &productStoreStub{product: productWithReview(other, 5)}
	svc := services.NewProductService(store, nil, nil)

	err := svc.AddReview(context.Background(), store.product.ID.Hex(), reviewer, 1, "not for me")

	require.NoError(t, err)
	assert.Equal(t, 3.0, store.setRating)
	assert.Equal(t, 2, store.setNumReviews)
}

func TestDeleteLastReviewZeroesAggregates(t *testing.T) {
	store := &productStoreStub{product: productWithReview(primitive.NewObjectID(), 5)}
	svc := services.NewProductService(store, nil, nil)

	err := svc.DeleteReview(context.Background(), store.product.ID.Hex(), store.product.Reviews[0].ID.Hex())

	require.NoError(t, err)
	assert.Empty(t, store.setReviews)
	assert.Equal(t, 0.0, store.setRating)
	assert.Equal(t, 0, store.setNumReviews)
}

func TestDeleteRemovesFeedEntriesBeforeProduct(t *testing.T) {
	calls := []string{}
	store := &productStoreStub{calls: &calls}
	recent := &recentStoreStub{calls: &calls}
	svc := services.NewProductService(store, nil, recent)

	oid := primitive.NewObjectID()
	require.NoError(t, svc.Delete(context.Background(), oid.Hex()))

	assert.Equal(t, []string{"feed", "products"}, calls)
	assert.Equal(t, []primitive.ObjectID{oid}, recent.removed)
}
