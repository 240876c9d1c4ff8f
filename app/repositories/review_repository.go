package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ErrDuplicateScore is returned when a user scores the same product twice.
// The composite unique index is the source of truth, so concurrent inserts
// cannot both succeed.
var ErrDuplicateScore = errors.New("score already exists for this user and product")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateOpinion(ctx context.Context, opinion *models.Opinion) error {
	defer metrics.ObserveQuery("insert")()
	return r.db.WithContext(ctx).Create(opinion).Error
}

// ListOpinions returns a page of opinions for a product, newest first.
// A non-empty search term filters on comment text.
func (r *ReviewRepository) ListOpinions(ctx context.Context, productID uuid.UUID, search string, page, limit int) ([]models.Opinion, int64, error) {
	defer metrics.ObserveQuery("select")()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	base := r.db.WithContext(ctx).
		Model(&models.Opinion{}).
		Where("product_id = ?", productID)
	if search != "" {
		base = base.Where("comment LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var opinions []models.Opinion
	err := base.
		Order("date_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&opinions).Error
	return opinions, total, err
}

// ScoreExists reports whether the user already scored the product.
func (r *ReviewRepository) ScoreExists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	defer metrics.ObserveQuery("select")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// CreateScore inserts a score and maps the unique-index violation to
// ErrDuplicateScore so callers never race a check-then-insert.
func (r *ReviewRepository) CreateScore(ctx context.Context, score *models.Score) error {
	defer metrics.ObserveQuery("insert")()

	err := r.db.WithContext(ctx).Create(score).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateScore
	}
	return err
}

// AverageScore returns the mean score for a product, 0 when unscored.
func (r *ReviewRepository) AverageScore(ctx context.Context, productID uuid.UUID) (float64, error) {
	defer metrics.ObserveQuery("select")()

	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Score{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}
