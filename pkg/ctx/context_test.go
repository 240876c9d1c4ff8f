package ctx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamAndQuery(t *testing.T) {
	mux := chi.NewRouter()
	mux.Get("/product/get/{product_id}", Wrap(func(c *Context) {
		assert.Equal(t, "abc", c.Param("product_id"))
		assert.Equal(t, "shoes", c.Query("type"))
		assert.Equal(t, 3, c.QueryInt("page", 1))
		assert.Equal(t, 1, c.QueryInt("missing", 1))
		c.Success(map[string]string{"ok": "yes"})
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/get/abc?type=shoes&page=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":200`)
}

type bindInput struct {
	Name  string `json:"name" validate:"required"`
	Score int    `json:"score" validate:"gte=0,lte=100"`
}

func TestBindJSON(t *testing.T) {
	handler := Wrap(func(c *Context) {
		var in bindInput
		if !c.BindJSON(&in) {
			return
		}
		c.Success(in)
	})

	// Valid body passes through.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","score":50}`))
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Malformed JSON is a 400.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A failing rule is a 422 with field errors.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"score":101}`))
	handler(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name"`)
	assert.Contains(t, rec.Body.String(), `"score"`)
}

func TestStatusHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	Wrap(func(c *Context) {
		c.Status(http.StatusResetContent)
		assert.Equal(t, http.StatusResetContent, c.WrittenStatus())
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusResetContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
