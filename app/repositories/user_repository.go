// Package repositories holds the GORM data access layer. Every repository
// takes an injected *gorm.DB so tests can run against an in-memory sqlite
// database.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ErrNotFound is returned by all repositories when a row does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	defer metrics.ObserveQuery("select")()

	var user models.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// FindByUsername looks up a user by their unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer metrics.ObserveQuery("select")()

	var user models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// UsernameOrEmailTaken reports whether another account already owns the
// username or email. The unique indexes remain the final authority; this
// pre-check just produces a friendly error before the insert.
func (r *UserRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	defer metrics.ObserveQuery("select")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// CreateWithCart persists a new user and their empty cart in a single
// transaction. The cart is created at registration and lives as long as
// the user does.
func (r *UserRepository) CreateWithCart(ctx context.Context, user *models.User) error {
	defer metrics.ObserveQuery("insert")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Cart{UserID: user.UserID}).Error
	})
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	defer metrics.ObserveQuery("update")()
	return r.db.WithContext(ctx).Save(user).Error
}
