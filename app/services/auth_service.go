package services

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// AuthService owns the account and session lifecycle: registration, login,
// token refresh, logout (refresh-token revocation), password change and
// profile access.
type AuthService struct {
	users  *repositories.UserRepository
	tokens *repositories.TokenRepository
}

func NewAuthService(users *repositories.UserRepository, tokens *repositories.TokenRepository) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput carries the fields of a new account. Field validation
// (required, email shape) happens at the bind layer.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Register creates a user with a hashed password and an empty cart, then
// issues a fresh token pair. Duplicate username or email is ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, auth.Pair, error) {
	taken, err := s.users.UsernameOrEmailTaken(ctx, in.Username, in.Email)
	if err != nil {
		return models.User{}, auth.Pair{}, fmt.Errorf("register: %w", err)
	}
	if taken {
		return models.User{}, auth.Pair{}, ErrConflict
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, auth.Pair{}, fmt.Errorf("register: %w", err)
	}

	user := models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		AnonUser:    true,
	}
	if err := s.users.CreateWithCart(ctx, &user); err != nil {
		return models.User{}, auth.Pair{}, fmt.Errorf("register: %w", err)
	}

	pair, err := auth.NewPair(user.UserID)
	if err != nil {
		return models.User{}, auth.Pair{}, fmt.Errorf("register: %w", err)
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.UserID)
	return user, pair, nil
}

// Login verifies the credentials and issues a fresh pair. Any mismatch,
// unknown username included, is the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.Pair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return auth.Pair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.Pair{}, fmt.Errorf("login: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return auth.Pair{}, ErrInvalidCredentials
	}

	pair, err := auth.NewPair(user.UserID)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("login: %w", err)
	}

	logger.WithCtx(ctx).Info("user logged in", "user_id", user.UserID)
	return pair, nil
}

// Refresh mints a new access token from a valid, unrevoked refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if revoked {
		return "", ErrInvalidToken
	}

	access, err := auth.Generate(claims.Subject(), auth.TypeAccess, config.AccessTokenTTL())
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return access, nil
}

// Logout blacklists the refresh token's jti. A malformed, expired or
// already-revoked token is ErrInvalidToken; under concurrent calls with the
// same token the duplicate insert reads as the same revoked end state.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := auth.ParseRefresh(refreshToken)
	if err != nil {
		return ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if revoked {
		return ErrInvalidToken
	}

	if err := s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	logger.WithCtx(ctx).Info("user logged out", "user_id", claims.UserID)
	return nil
}

// ChangePassword verifies the old password, checks the new one, stores the
// new hash and issues a fresh pair. Previously issued tokens stay valid
// until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword, repeatPassword string) (auth.Pair, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return auth.Pair{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.Pair{}, fmt.Errorf("change password: %w", err)
	}

	if !auth.CheckPassword(user.Password, oldPassword) {
		return auth.Pair{}, ErrInvalidCredentials
	}
	if newPassword != repeatPassword {
		return auth.Pair{}, ErrPasswordMismatch
	}
	if newPassword == oldPassword {
		return auth.Pair{}, ErrPasswordUnchanged
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("change password: %w", err)
	}
	user.Password = hash
	if err := s.users.Update(ctx, &user); err != nil {
		return auth.Pair{}, fmt.Errorf("change password: %w", err)
	}

	pair, err := auth.NewPair(user.UserID)
	if err != nil {
		return auth.Pair{}, fmt.Errorf("change password: %w", err)
	}

	logger.WithCtx(ctx).Info("password changed", "user_id", user.UserID)
	return pair, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// ProfileUpdate carries a partial profile update: nil fields stay untouched.
// Avatar bytes, when present, are stored on the configured disk and the
// resulting path replaces the user's image.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Avatar      []byte
	AvatarName  string
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, in ProfileUpdate) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}

	if len(in.Avatar) > 0 {
		p := fmt.Sprintf("avatars/%s%s", user.UserID, path.Ext(in.AvatarName))
		if err := storage.Put(p, in.Avatar); err != nil {
			return models.User{}, fmt.Errorf("update profile: store avatar: %w", err)
		}
		user.Image = p
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
