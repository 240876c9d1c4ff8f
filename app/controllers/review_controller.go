package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type opinionRequest struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

// AddOpinion attaches a comment to a product. The purchase gate already ran
// in middleware.
func (rc *ReviewController) AddOpinion(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	var req opinionRequest
	if !c.BindJSON(&req) {
		return
	}

	opinion, err := rc.reviews.AddOpinion(c.Context(), ident.UserID, productID, req.Comment)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound("Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Created(map[string]string{
		"comment":   opinion.Comment,
		"date_time": opinion.DateTime.Format(dateTimeLayout),
	})
}

type opinionRow struct {
	Comment  string `json:"comment"`
	DateTime string `json:"date_time"`
}

// ListOpinions returns a product's opinions, optionally filtered by
// ?search= substring. Public.
func (rc *ReviewController) ListOpinions(c *ctx.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	opinions, total, err := rc.reviews.ListOpinions(c.Context(), productID, c.Query("search"), page, limit)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound("Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	rows := make([]opinionRow, 0, len(opinions))
	for _, o := range opinions {
		rows = append(rows, toOpinionRow(o))
	}

	response.Paginated(c.W, rows, response.NewPagination(page, limit, total))
}

func toOpinionRow(o models.Opinion) opinionRow {
	return opinionRow{Comment: o.Comment, DateTime: o.DateTime.Format(dateTimeLayout)}
}

type scoreRequest struct {
	Score int `json:"score" validate:"gte=0,lte=100"`
}

// AddScore records the caller's single 0..100 rating for a product. A
// second attempt, concurrent ones included, is a 400.
func (rc *ReviewController) AddScore(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	var req scoreRequest
	if !c.BindJSON(&req) {
		return
	}

	score, err := rc.reviews.AddScore(c.Context(), ident.UserID, productID, req.Score)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound("Product not found")
	case errors.Is(err, services.ErrAlreadyScored):
		c.Error(http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(c, err)
	default:
		c.Created(map[string]int{"score": score.Score})
	}
}

// GetScore returns the product's average score, 0 when unscored. Public.
func (rc *ReviewController) GetScore(c *ctx.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.NotFound("Product not found")
		return
	}

	avg, err := rc.reviews.AverageScore(c.Context(), productID)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound("Product not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(map[string]float64{"average_score": avg})
}
