package controllers

import (
	"errors"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/response"
)

type TrackController struct {
	checkout *services.CheckoutService
}

func NewTrackController(checkout *services.CheckoutService) *TrackController {
	return &TrackController{checkout: checkout}
}

type trackRow struct {
	TrackID  string `json:"track_id"`
	Title    string `json:"title"`
	DateTime string `json:"date_time"`
}

func toTrackRow(t models.Track) trackRow {
	return trackRow{
		TrackID:  t.TrackEntryID.String(),
		Title:    t.Title,
		DateTime: t.DateTime.Format(dateTimeLayout),
	}
}

// List returns a page of the caller's own tracking entries, newest first.
func (tc *TrackController) List(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	tracks, total, err := tc.checkout.ListTracks(c.Context(), ident.UserID, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}

	rows := make([]trackRow, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, toTrackRow(t))
	}

	response.Paginated(c.W, rows, response.NewPagination(page, limit, total))
}

// Get returns one tracking entry. Another user's entry and a nonexistent
// one are the same 404.
func (tc *TrackController) Get(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	id, err := uuid.Parse(c.Param("track_id"))
	if err != nil {
		c.NotFound("Track not found")
		return
	}

	track, err := tc.checkout.GetTrack(c.Context(), ident.UserID, id)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound("Track not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(toTrackRow(track))
}
