package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ShopRepository reads purchase records and their tracking trails.
// Writes happen inside the checkout transaction (see the checkout service).
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// HasPurchased reports whether at least one purchase record exists whose
// cart belongs to the user. Deliberately product-agnostic: any completed
// checkout, ever, satisfies it.
func (r *ShopRepository) HasPurchased(ctx context.Context, userID uuid.UUID) (bool, error) {
	defer metrics.ObserveQuery("select")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Joins("JOIN carts ON carts.cart_id = shops.cart_id").
		Where("carts.user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// TracksByUser returns one page of the user's own tracking entries, newest
// first, plus the total count for pagination. The ownership filter is part
// of the query, never applied after the fact.
func (r *ShopRepository) TracksByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Track, int64, error) {
	defer metrics.ObserveQuery("select")()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	base := r.db.WithContext(ctx).
		Model(&models.Track{}).
		Joins("JOIN shops ON shops.track_id = tracks.shop_id").
		Joins("JOIN carts ON carts.cart_id = shops.cart_id").
		Where("carts.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tracks []models.Track
	err := base.
		Order("tracks.date_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tracks).Error
	return tracks, total, err
}

// TrackByID returns a single tracking entry owned by the user. A foreign
// entry and a missing one are indistinguishable: both are ErrNotFound.
func (r *ShopRepository) TrackByID(ctx context.Context, userID, trackEntryID uuid.UUID) (models.Track, error) {
	defer metrics.ObserveQuery("select")()

	var track models.Track
	err := r.db.WithContext(ctx).
		Joins("JOIN shops ON shops.track_id = tracks.shop_id").
		Joins("JOIN carts ON carts.cart_id = shops.cart_id").
		Where("tracks.track_entry_id = ? AND carts.user_id = ?", trackEntryID, userID).
		First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Track{}, ErrNotFound
	}
	return track, err
}
