// Package routes mounts the HTTP surface. All application endpoints live
// under /api; /metrics sits at the root for Prometheus scrapes.
package routes

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/reqid"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// Register wires repositories, services and controllers onto a fresh router.
func Register(db *gorm.DB) *router.Router {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	shops := repositories.NewShopRepository(db)
	reviews := repositories.NewReviewRepository(db)
	tokens := repositories.NewTokenRepository(db)

	authSvc := services.NewAuthService(users, tokens)
	productSvc := services.NewProductService(products)
	cartSvc := services.NewCartService(db)
	checkoutSvc := services.NewCheckoutService(db, shops)
	reviewSvc := services.NewReviewService(reviews, products)

	authCtl := controllers.NewAuthController(authSvc)
	profileCtl := controllers.NewProfileController(authSvc)
	productCtl := controllers.NewProductController(productSvc)
	cartCtl := controllers.NewCartController(cartSvc)
	shopCtl := controllers.NewShopController(checkoutSvc)
	reviewCtl := controllers.NewReviewController(reviewSvc)
	trackCtl := controllers.NewTrackController(checkoutSvc)

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	gate := middleware.PurchaseGate(checkoutSvc.HasPurchased)

	api := r.Group("/api")

	// Session lifecycle.
	api.Post("/register", "auth.register", ctx.Wrap(authCtl.Register))
	api.Post("/login", "auth.login", ctx.Wrap(authCtl.Login))
	api.Post("/refresh", "auth.refresh", ctx.Wrap(authCtl.Refresh))
	api.Get("/logout", "auth.logout", ctx.Wrap(authCtl.Logout), middleware.Auth)
	api.Post("/change-password", "auth.change-password", ctx.Wrap(authCtl.ChangePassword), middleware.Auth)
	api.Get("/get-profile", "profile.get", ctx.Wrap(profileCtl.Get), middleware.Auth)
	api.Patch("/set-profile", "profile.set", ctx.Wrap(profileCtl.Set), middleware.Auth)

	// Catalogue, public.
	api.Get("/product/list", "product.list", ctx.Wrap(productCtl.List))
	api.Get("/product/get/{product_id}", "product.get", ctx.Wrap(productCtl.Get))

	// Cart and checkout.
	api.Post("/cart/add", "cart.add", ctx.Wrap(cartCtl.Add), middleware.Auth)
	api.Delete("/cart/remove", "cart.remove", ctx.Wrap(cartCtl.Remove), middleware.Auth)
	api.Post("/shop", "shop.checkout", ctx.Wrap(shopCtl.Checkout), middleware.Auth)

	// Reviews. Writes require a past purchase; reads are public.
	api.Post("/opinion/add/{product_id}", "opinion.add", ctx.Wrap(reviewCtl.AddOpinion), middleware.Auth, gate)
	api.Get("/opinion/list/{product_id}", "opinion.list", ctx.Wrap(reviewCtl.ListOpinions))
	api.Post("/score/add/{product_id}", "score.add", ctx.Wrap(reviewCtl.AddScore), middleware.Auth, gate)
	api.Get("/score/get/{product_id}", "score.get", ctx.Wrap(reviewCtl.GetScore))

	// Purchase tracking, gated like review writes.
	api.Get("/track/list", "track.list", ctx.Wrap(trackCtl.List), middleware.Auth, gate)
	api.Get("/track/get/{track_id}", "track.get", ctx.Wrap(trackCtl.Get), middleware.Auth, gate)

	r.HandleFunc("/metrics", metrics.Handler())

	return r
}
