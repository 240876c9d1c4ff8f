// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, call one service method, and map the service's sentinel
// errors onto the HTTP taxonomy. No business rules live here.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
)

// RefreshTokenHeader carries the refresh token on logout calls. The access
// token in Authorization authenticates the call; this one names the session
// being ended.
const RefreshTokenHeader = "Refresh-Token"

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,alpha_dash,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"nullable,max=150"`
	LastName    string `json:"last_name" validate:"nullable,max=150"`
	PhoneNumber string `json:"phone_number" validate:"nullable,max=15"`
}

// Register creates an account and returns a fresh token pair.
func (a *AuthController) Register(c *ctx.Context) {
	var req registerRequest
	if !c.BindJSON(&req) {
		return
	}

	_, pair, err := a.auth.Register(c.Context(), services.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if errors.Is(err, services.ErrConflict) {
		c.Error(http.StatusNotAcceptable, err.Error())
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Created(pair)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login trades credentials for a token pair.
func (a *AuthController) Login(c *ctx.Context) {
	var req loginRequest
	if !c.BindJSON(&req) {
		return
	}

	pair, err := a.auth.Login(c.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Error(http.StatusNotAcceptable, "Invalid credentials")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Refresh mints a new access token from an unrevoked refresh token.
func (a *AuthController) Refresh(c *ctx.Context) {
	var req refreshRequest
	if !c.BindJSON(&req) {
		return
	}

	access, err := a.auth.Refresh(c.Context(), req.Refresh)
	if errors.Is(err, services.ErrInvalidToken) {
		c.Error(http.StatusNotAcceptable, "Invalid token")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Success(map[string]string{"access": access})
}

// Logout revokes the refresh token named in the Refresh-Token header.
// Success is 205 Reset Content with an empty body.
func (a *AuthController) Logout(c *ctx.Context) {
	token := c.Header(RefreshTokenHeader)
	if token == "" {
		c.Error(http.StatusNotAcceptable, "Refresh-Token header required")
		return
	}

	err := a.auth.Logout(c.Context(), token)
	if errors.Is(err, services.ErrInvalidToken) {
		c.Error(http.StatusNotAcceptable, "Invalid token")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	c.Status(http.StatusResetContent)
}

type changePasswordRequest struct {
	OldPassword    string `json:"old_password" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required,min=8"`
	RepeatPassword string `json:"repeat_password" validate:"required"`
}

// ChangePassword swaps the caller's password and returns a fresh pair.
func (a *AuthController) ChangePassword(c *ctx.Context) {
	ident, ok := middleware.IdentityFrom(c.Context())
	if !ok {
		c.Unauthorized()
		return
	}

	var req changePasswordRequest
	if !c.BindJSON(&req) {
		return
	}

	pair, err := a.auth.ChangePassword(c.Context(), ident.UserID, req.OldPassword, req.NewPassword, req.RepeatPassword)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusNotAcceptable, "Invalid credentials")
	case errors.Is(err, services.ErrPasswordMismatch), errors.Is(err, services.ErrPasswordUnchanged):
		c.Error(http.StatusBadRequest, err.Error())
	case err != nil:
		internalError(c, err)
	default:
		c.Success(pair)
	}
}

func internalError(c *ctx.Context, err error) {
	logger.WithCtx(c.Context()).Error("request failed", "error", err)
	c.Error(http.StatusInternalServerError, "Internal Server Error")
}
