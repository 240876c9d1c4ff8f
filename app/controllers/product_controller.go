package controllers

import (
	"errors"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List returns the catalogue, optionally narrowed by ?type=&name=&brand=
// (case-insensitive exact matches).
func (p *ProductController) List(c *ctx.Context) {
	filter := repositories.ProductFilter{
		Type:  c.Query("type"),
		Name:  c.Query("name"),
		Brand: c.Query("brand"),
	}

	products, err := p.products.List(c.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(products)
}

// Get returns a single product by id.
func (p *ProductController) Get(c *ctx.Context) {
	id, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	product, err := p.products.Get(c.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound("Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(product)
}
