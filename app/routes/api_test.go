package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
)

var dbSeq atomic.Int64

func newTestHandler(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:routes%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Shop{}, &models.Track{},
		&models.Opinion{}, &models.Score{},
		&models.RevokedToken{},
	))

	return Register(db).Handler(), db
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func registerAndLogin(t *testing.T, h http.Handler, username string) (access, refresh string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter2hunter2",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	return data["access"].(string), data["refresh"].(string)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	access, refresh := registerAndLogin(t, h, "alice")

	// Bad credentials are 406, not 401, and never name the failing field.
	rec := doJSON(t, h, http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "hunter2hunter2",
	}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Refresh mints a fresh access token.
	rec = doJSON(t, h, http.MethodPost, "/api/refresh", map[string]string{"refresh": refresh}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Logout needs both tokens and answers 205 with an empty body.
	headers := bearer(access)
	headers["Refresh-Token"] = refresh
	rec = doJSON(t, h, http.MethodGet, "/api/logout", nil, headers)
	assert.Equal(t, http.StatusResetContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// The revoked refresh token is dead.
	rec = doJSON(t, h, http.MethodPost, "/api/refresh", map[string]string{"refresh": refresh}, nil)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestValidationErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/register", map[string]string{
		"username": "bob",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Errors, "email")
	assert.Contains(t, envelope.Errors, "password")
}

func TestProductEndpointsArePublic(t *testing.T) {
	h, db := newTestHandler(t)
	p := models.Product{Type: "laptop", Name: "ThinkPad", Brand: "Lenovo"}
	require.NoError(t, db.Create(&p).Error)

	rec := doJSON(t, h, http.MethodGet, "/api/product/list?type=LAPTOP", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "type filter matches case-insensitively")

	rec = doJSON(t, h, http.MethodGet, "/api/product/get/"+p.ProductID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/product/get/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartRequiresAuth(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/api/cart/add", map[string]any{
		"products": []map[string]any{{"id": "x", "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/cart/add", nil, bearer("bogus"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPurchaseFlowAndGate(t *testing.T) {
	h, db := newTestHandler(t)
	p := models.Product{Type: "phone", Name: "Pixel", Brand: "Google"}
	require.NoError(t, db.Create(&p).Error)

	access, _ := registerAndLogin(t, h, "carol")
	auth := bearer(access)

	// Review writes and tracking reads are gated until a purchase exists.
	rec := doJSON(t, h, http.MethodPost, "/api/opinion/add/"+p.ProductID.String(), map[string]string{"comment": "nice"}, auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/track/list", nil, auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Checkout on an empty cart is a 200 no-op with an error message.
	rec = doJSON(t, h, http.MethodPost, "/api/shop", nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")

	// Fill the cart and buy.
	rec = doJSON(t, h, http.MethodPost, "/api/cart/add", map[string]any{
		"products": []map[string]any{{"id": p.ProductID.String(), "quantity": 2}},
	}, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/shop", nil, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeData(t, rec)
	assert.NotEmpty(t, data["track_id"])
	assert.NotEmpty(t, data["date_time"])

	// The purchase unlocks the gate for every product.
	rec = doJSON(t, h, http.MethodPost, "/api/opinion/add/"+p.ProductID.String(), map[string]string{"comment": "nice"}, auth)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/score/add/"+p.ProductID.String(), map[string]int{"score": 90}, auth)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Scoring twice is a 400.
	rec = doJSON(t, h, http.MethodPost, "/api/score/add/"+p.ProductID.String(), map[string]int{"score": 10}, auth)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Public score read reflects the single score.
	rec = doJSON(t, h, http.MethodGet, "/api/score/get/"+p.ProductID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	avg := decodeData(t, rec)
	assert.EqualValues(t, 90, avg["average_score"])

	// Tracking is readable now.
	rec = doJSON(t, h, http.MethodGet, "/api/track/list", nil, auth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bazaar_")
}
