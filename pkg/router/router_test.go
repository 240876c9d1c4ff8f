package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutes(t *testing.T) {
	r := New()
	r.Get("/product/get/{product_id}", "product.get", ok)
	r.Post("/login", "auth.login", ok)

	path, found := r.Path("product.get")
	require.True(t, found)
	assert.Equal(t, "/product/get/{product_id}", path)

	_, found = r.Path("missing")
	assert.False(t, found)

	assert.Len(t, r.Routes(), 2)
}

func TestURLBuilding(t *testing.T) {
	r := New()
	r.Get("/track/get/{track_id}", "track.get", ok)

	url, err := r.URL("track.get", map[string]string{"track_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/track/get/abc", url)

	_, err = r.URL("track.get", nil)
	assert.Error(t, err, "unsubstituted params are an error")

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	api := r.Group("/api", mw("group"))
	api.Get("/ping", "ping", ok, mw("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"group", "route"}, order, "group middleware runs before route middleware")
}

func TestMethodRouting(t *testing.T) {
	r := New()
	r.Delete("/cart/remove", "cart.remove", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/remove", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/remove", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNestedGroups(t *testing.T) {
	r := New()
	api := r.Group("/api")
	product := api.Group("/product")
	product.Get("/list", "product.list", ok)

	path, found := r.Path("product.list")
	require.True(t, found)
	assert.Equal(t, "/api/product/list", path)
}
