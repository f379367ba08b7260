package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/app/services"
)

type userStoreStub struct {
	services.UserStore

	target models.User
	admins int64

	adminsCounted bool
	updated       bson.M
	deleted       []primitive.ObjectID
}

func (s *userStoreStub) FindByID(context.Context, primitive.ObjectID) (models.User, error) {
	return s.target, nil
}

func (s *userStoreStub) CountAdmins(context.Context) (int64, error) {
	s.adminsCounted = true
	return s.admins, nil
}

func (s *userStoreStub) Update(_ context.Context, _ primitive.ObjectID, fields bson.M) error {
	s.updated = fields
	return nil
}

func (s *userStoreStub) Delete(_ context.Context, id primitive.ObjectID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func adminUser() models.User {
	return models.User{ID: primitive.NewObjectID(), Name: "root", IsAdmin: true}
}

func TestDemoteLastAdminRefused(t *testing.T) {
	store := &userStoreStub{target: adminUser(), admins: 1}
	svc := services.NewUserService(store, nil)

	_, err := svc.UpdateByAdmin(context.Background(), store.target.ID.Hex(), "root", "root@example.com", false)

	assert.ErrorIs(t, err, services.ErrLastAdminDemote)
	assert.Nil(t, store.updated)
}

func TestDemoteAdminWithAnotherRemaining(t *testing.T) {
	store := &userStoreStub{target: adminUser(), admins: 2}
	svc := services.NewUserService(store, nil)

	_, err := svc.UpdateByAdmin(context.Background(), store.target.ID.Hex(), "root", "root@example.com", false)

	require.NoError(t, err)
	assert.Equal(t, false, store.updated["isAdmin"])
}

func TestPromoteSkipsAdminCount(t *testing.T) {
	store := &userStoreStub{target: models.User{ID: primitive.NewObjectID(), Name: "bea"}}
	svc := services.NewUserService(store, nil)

	_, err := svc.UpdateByAdmin(context.Background(), store.target.ID.Hex(), "bea", "bea@example.com", true)

	require.NoError(t, err)
	assert.False(t, store.adminsCounted)
	assert.Equal(t, true, store.updated["isAdmin"])
}

func TestDeleteLastAdminRefused(t *testing.T) {
	store := &userStoreStub{target: adminUser(), admins: 1}
	svc := services.NewUserService(store, nil)

	err := svc.Delete(context.Background(), store.target.ID.Hex())

	assert.ErrorIs(t, err, services.ErrLastAdminDelete)
	assert.Empty(t, store.deleted)
}

func TestDeleteAdminWithAnotherRemaining(t *testing.T) {
	store := &userStoreStub{target: adminUser(), admins: 2}
	svc := services.NewUserService(store, nil)

	err := svc.Delete(context.Background(), store.target.ID.Hex())

	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{store.target.ID}, store.deleted)
}

func TestDeleteNonAdminSkipsAdminCount(t *testing.T) {
	store := &userStoreStub{target: models.User{ID: primitive.NewObjectID(), Name: "carl"}}
	svc := services.NewUserService(store, nil)

	err := svc.Delete(context.Background(), store.target.ID.Hex())

	require.NoError(t, err)
	assert.False(t, store.adminsCounted)
	assert.Len(t, store.deleted, 1)
}
