package controllers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

type ProfileController struct {
	auth *services.AuthService
}

func NewProfileController(auth *services.AuthService) *ProfileController {
	return &ProfileController{auth: auth}
}

// Get returns the caller's own profile. The password hash never serializes.
func (p *ProfileController) Get(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	user, err := p.auth.Profile(c.Context(), ident.UserID)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound()
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(user)
}

type setProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"nullable,max=150"`
	LastName    *string `json:"last_name" validate:"nullable,max=150"`
	PhoneNumber *string `json:"phone_number" validate:"nullable,max=15"`
	Avatar      string  `json:"avatar" validate:"nullable"` // base64 image data
	AvatarName  string  `json:"avatar_name" validate:"nullable,max=255"`
}

// Set applies a partial profile update. Absent fields stay untouched; an
// avatar arrives base64-encoded and lands on the configured storage disk.
func (p *ProfileController) Set(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var req setProfileRequest
	if !c.BindJSON(&req) {
		return
	}

	update := services.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		AvatarName:  req.AvatarName,
	}
	if req.Avatar != "" {
		raw, err := base64.StdEncoding.DecodeString(req.Avatar)
		if err != nil {
			c.Error(http.StatusBadRequest, "avatar must be base64 encoded")
			return
		}
		update.Avatar = raw
	}

	user, err := p.auth.UpdateProfile(c.Context(), ident.UserID, update)
	if errors.Is(err, services.ErrNotFound) {
		c.NotFound()
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(user)
}
