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

// ProductService serves the read-only catalogue with a short-TTL Redis
// cache in front of the database.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns products matching the optional case-insensitive filters.
// The unfiltered listing is cached; filtered queries go to the database.
func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) ([]models.Product, error) {
	unfiltered := f == (repositories.ProductFilter{})

	if unfiltered {
		var cached []models.Product
		if cache.Get(productListKey, &cached) {
			return cached, nil
		}
	}

	products, err := s.products.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if unfiltered {
		_ = cache.Set(productListKey, products, config.CacheTTL())
	}
	return products, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var cached models.Product
	key := productKey(id)
	if cache.Get(key, &cached) {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}

	_ = cache.Set(key, product, config.CacheTTL())
	return product, nil
}

const productListKey = "products:list"

func productKey(id uuid.UUID) string {
	return "products:" + id.String()
}
