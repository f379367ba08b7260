package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kantor012/Product-Catalog/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/products/abc123", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err, "missing params must error")

	_, err = r.URL("nope", nil)
	assert.Error(t, err, "unknown route must error")
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", mw("group"))
	api.Get("/things", "things.index", ok, mw("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/things", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order)
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Post("/categories", "categories.store", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutesRegistry(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Delete("/b", "b", ok)
	r.Handle(http.MethodGet, "/raw", "", http.HandlerFunc(ok))

	infos := r.Routes()
	assert.Len(t, infos, 2, "unnamed routes stay out of the registry")
}
