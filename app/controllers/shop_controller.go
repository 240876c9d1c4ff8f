package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

// dateTimeLayout is the wire format for purchase and tracking timestamps.
const dateTimeLayout = "2006-01-02 15:04:05"

type ShopController struct {
	checkout *services.CheckoutService
}

func NewShopController(checkout *services.CheckoutService) *ShopController {
	return &ShopController{checkout: checkout}
}

// Checkout converts the caller's cart into a purchase record. An empty cart
// is an observable no-op: 200 with an error message, nothing created.
func (sc *ShopController) Checkout(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	shop, err := sc.checkout.Checkout(c.Context(), ident.UserID)
	if errors.Is(err, services.ErrCartEmpty) {
		c.JSON(http.StatusOK, map[string]string{"error": "cart is empty"})
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Created(map[string]string{
		"track_id":  shop.TrackID.String(),
		"date_time": shop.DateTime.Format(dateTimeLayout),
	})
}
