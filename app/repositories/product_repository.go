package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// ProductRepository handles read access to the catalogue.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows List. Empty fields match everything; non-empty
// fields are case-insensitive exact matches.
type ProductFilter struct {
	Type  string
	Name  string
	Brand string
}

// List returns products matching the filter.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	defer metrics.ObserveQuery("select")()

	q := r.db.WithContext(ctx).Model(&models.Product{})
	if f.Type != "" {
		q = q.Where("LOWER(type) = LOWER(?)", f.Type)
	}
	if f.Name != "" {
		q = q.Where("LOWER(name) = LOWER(?)", f.Name)
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) = LOWER(?)", f.Brand)
	}

	var products []models.Product
	err := q.Find(&products).Error
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	defer metrics.ObserveQuery("select")()

	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return product, err
}

// Exists reports whether a product id resolves to a row.
func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	defer metrics.ObserveQuery("select")()

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
