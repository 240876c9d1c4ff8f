package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// TokenRepository stores revoked refresh-token identifiers. A row means
// the refresh token with that jti must never mint access tokens again.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Revoke records a jti. Revoking an already-revoked token is a no-op,
// which makes logout idempotent.
func (r *TokenRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	defer metrics.ObserveQuery("insert")()

	err := r.db.WithContext(ctx).Create(&models.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	defer metrics.ObserveQuery("select")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	return count > 0, err
}

// PurgeExpired removes rows whose underlying tokens have expired anyway.
// Meant for a periodic sweep, not the request path.
func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	defer metrics.ObserveQuery("delete")()

	res := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}
