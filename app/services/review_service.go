package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
)

// ReviewService handles opinions and scores. The purchase gate runs in
// middleware before any write lands here, so these methods assume an
// already-authorized caller.
type ReviewService struct {
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
}

func NewReviewService(reviews *repositories.ReviewRepository, products *repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// AddOpinion attaches a free-text comment to a product. Users may leave
// any number of opinions per product.
func (s *ReviewService) AddOpinion(ctx context.Context, userID, productID uuid.UUID, comment string) (models.Opinion, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return models.Opinion{}, err
	}

	opinion := models.Opinion{ProductID: productID, UserID: userID, Comment: comment}
	if err := s.reviews.CreateOpinion(ctx, &opinion); err != nil {
		return models.Opinion{}, fmt.Errorf("add opinion: %w", err)
	}
	return opinion, nil
}

// ListOpinions returns a page of a product's opinions, optionally filtered
// by a comment substring. Public.
func (s *ReviewService) ListOpinions(ctx context.Context, productID uuid.UUID, search string, page, limit int) ([]models.Opinion, int64, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListOpinions(ctx, productID, search, page, limit)
}

// AddScore records a 0..100 rating, one per (user, product). The existence
// check catches repeats up front; the unique index stays the final
// authority, so two concurrent calls still yield exactly one row and the
// race loser gets the same ErrAlreadyScored.
func (s *ReviewService) AddScore(ctx context.Context, userID, productID uuid.UUID, value int) (models.Score, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return models.Score{}, err
	}

	scored, err := s.reviews.ScoreExists(ctx, userID, productID)
	if err != nil {
		return models.Score{}, fmt.Errorf("add score: %w", err)
	}
	if scored {
		return models.Score{}, ErrAlreadyScored
	}

	score := models.Score{ProductID: productID, UserID: userID, Score: value}
	err = s.reviews.CreateScore(ctx, &score)
	if errors.Is(err, repositories.ErrDuplicateScore) {
		return models.Score{}, ErrAlreadyScored
	}
	if err != nil {
		return models.Score{}, fmt.Errorf("add score: %w", err)
	}

	_ = cache.Del(averageKey(productID))
	return score, nil
}

// AverageScore returns the product's mean score, exactly 0 when nobody has
// scored it. Public and cached until the next AddScore.
func (s *ReviewService) AverageScore(ctx context.Context, productID uuid.UUID) (float64, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return 0, err
	}

	key := averageKey(productID)
	var cached float64
	if cache.Get(key, &cached) {
		return cached, nil
	}

	avg, err := s.reviews.AverageScore(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("average score: %w", err)
	}

	_ = cache.Set(key, avg, config.CacheTTL())
	return avg, nil
}

func (s *ReviewService) requireProduct(ctx context.Context, productID uuid.UUID) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func averageKey(productID uuid.UUID) string {
	return "scores:avg:" + productID.String()
}
