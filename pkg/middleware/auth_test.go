package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/auth"
	"github.com/Kantor012/Product-Catalog/pkg/middleware"
)

// stubLoader resolves a single known user id.
type stubLoader struct {
	user models.User
}

func (s stubLoader) FindPublicByHexID(_ context.Context, id string) (models.User, error) {
	if id != s.user.ID.Hex() {
		return models.User{}, errors.New("not found")
	}
	return s.user, nil
}

func protectedEcho(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.UserFromCtx(r.Context())
		require.True(t, ok, "user must be in context behind Protect")
		w.Write([]byte(u.Name)) //nolint:errcheck
	}
}

func TestProtect_NoToken(t *testing.T) {
	h := middleware.Protect(stubLoader{})(protectedEcho(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, no token")
}

func TestProtect_BadToken(t *testing.T) {
	h := middleware.Protect(stubLoader{})(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, token failed")
}

func TestProtect_DeletedSubject(t *testing.T) {
	// Valid token whose subject no longer exists.
	gone := primitive.NewObjectID()
	token, err := auth.GenerateToken(gone.Hex(), false)
	require.NoError(t, err)

	h := middleware.Protect(stubLoader{user: models.User{ID: primitive.NewObjectID()}})(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtect_Success(t *testing.T) {
	user := models.User{ID: primitive.NewObjectID(), Name: "Ada"}
	token, err := auth.GenerateToken(user.ID.Hex(), false)
	require.NoError(t, err)

	h := middleware.Protect(stubLoader{user: user})(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", rec.Body.String())
}

func TestAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.Admin(next)

	// No user in context.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Non-admin user.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), models.User{Name: "Bob"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized as an admin")

	// Admin user.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), models.User{Name: "Root", IsAdmin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
