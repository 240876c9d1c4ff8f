package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// CheckoutService turns a non-empty cart into an immutable purchase record
// with a tracking trail. The whole conversion is one transaction on the
// locked cart row, so a concurrent cart mutation or second checkout waits
// its turn and sees the drained cart.
type CheckoutService struct {
	db    *gorm.DB
	shops *repositories.ShopRepository
}

func NewCheckoutService(db *gorm.DB, shops *repositories.ShopRepository) *CheckoutService {
	return &CheckoutService{db: db, shops: shops}
}

// Checkout converts the user's cart into a purchase record. An empty cart
// is ErrCartEmpty and leaves no trace: no Shop row, no Track, no state
// change. On success the cart lines are drained, the user stops being
// anonymous, and the new record carries an initial "order placed" entry.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID) (models.Shop, error) {
	defer metrics.ObserveQuery("transaction")()

	var shop models.Shop
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		var lines int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&lines).Error; err != nil {
			return err
		}
		if lines == 0 {
			return ErrCartEmpty
		}

		shop = models.Shop{CartID: cart.CartID}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		track := models.Track{ShopID: shop.TrackID, Title: "order placed"}
		if err := tx.Create(&track).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("user_id = ?", userID).
			Update("anon_user", false).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if errors.Is(err, ErrCartEmpty) {
		return models.Shop{}, ErrCartEmpty
	}
	if err != nil {
		return models.Shop{}, fmt.Errorf("checkout: %w", err)
	}

	logger.WithCtx(ctx).Info("checkout completed", "user_id", userID, "track_id", shop.TrackID)
	return shop, nil
}

// ListTracks returns one page of the caller's tracking entries.
func (s *CheckoutService) ListTracks(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Track, int64, error) {
	return s.shops.TracksByUser(ctx, userID, page, limit)
}

// GetTrack returns one of the caller's tracking entries. A foreign or
// unknown id is the same ErrNotFound.
func (s *CheckoutService) GetTrack(ctx context.Context, userID, trackID uuid.UUID) (models.Track, error) {
	track, err := s.shops.TrackByID(ctx, userID, trackID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Track{}, ErrNotFound
	}
	return track, err
}

// HasPurchased reports whether the user has ever completed a checkout.
// It backs the purchase-gate middleware.
func (s *CheckoutService) HasPurchased(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.shops.HasPurchased(ctx, userID)
}
