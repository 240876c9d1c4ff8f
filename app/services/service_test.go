package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
)

var dbSeq atomic.Int64

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Each call gets its own named memory database so tests stay isolated while
// the connection pool shares state within one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared&_busy_timeout=5000", dbSeq.Add(1))
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
	return db
}

// registerUser creates an account through the real registration path and
// returns the stored user.
func registerUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))
	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)
	return user
}

// seedProduct inserts one catalogue row.
func seedProduct(t *testing.T, db *gorm.DB, name string) models.Product {
	t.Helper()

	p := models.Product{Type: "laptop", Name: name, Brand: "Acme"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// fillCart puts one line in the user's cart so checkout has something to
// convert.
func fillCart(t *testing.T, db *gorm.DB, user models.User, product models.Product) {
	t.Helper()

	results, err := NewCartService(db).AddItems(context.Background(), user.UserID, []CartLine{
		{ID: product.ProductID.String(), Quantity: 1},
	})
	require.NoError(t, err)
	require.True(t, results[0].Success)
}
