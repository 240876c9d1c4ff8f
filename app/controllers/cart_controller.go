package controllers

import (
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

type cartAddRequest struct {
	Products []services.CartLine `json:"products" validate:"required"`
}

// Add puts products in the caller's cart. Lines succeed or fail one by one;
// the response reports each.
func (cc *CartController) Add(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var req cartAddRequest
	if !c.BindJSON(&req) {
		return
	}

	results, err := cc.cart.AddItems(c.Context(), ident.UserID, req.Products)
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(results)
}

type cartRemoveRequest struct {
	Products []string `json:"products" validate:"required"`
}

// Remove deletes products from the cart. A single literal "all" empties it
// without per-line validation.
func (cc *CartController) Remove(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var req cartRemoveRequest
	if !c.BindJSON(&req) {
		return
	}

	results, emptied, err := cc.cart.RemoveItems(c.Context(), ident.UserID, req.Products)
	if err != nil {
		internalError(c, err)
		return
	}

	if emptied {
		c.Success(map[string]string{"message": "cart emptied"})
		return
	}
	c.Success(results)
}
