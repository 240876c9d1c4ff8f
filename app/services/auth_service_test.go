package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
)

func TestRegisterCreatesUserAndEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))

	user, pair, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.True(t, user.AnonUser)
	assert.NotEqual(t, "hunter2hunter2", user.Password, "password must be stored hashed")

	var cart models.Cart
	require.NoError(t, db.First(&cart, "user_id = ?", user.UserID).Error)

	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestRegisterDuplicateUsernameOrEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "secretsecret",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "other@example.com", Password: "secretsecret",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "bob2", Email: "bob@example.com", Password: "secretsecret",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))
	registerUser(t, db, "carol")

	pair, err := svc.Login(context.Background(), "carol", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	_, err = svc.Login(context.Background(), "carol", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown username produces the exact same error as a bad password.
	_, err = svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshAndLogout(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))
	registerUser(t, db, "dave")

	pair, err := svc.Login(context.Background(), "dave", "correct-horse-battery")
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	// An access token is not a refresh token.
	_, err = svc.Refresh(context.Background(), pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.Logout(context.Background(), pair.Refresh))

	// A revoked refresh token never mints access tokens again.
	_, err = svc.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Logging out twice with the same token reads as invalid.
	assert.ErrorIs(t, svc.Logout(context.Background(), pair.Refresh), ErrInvalidToken)

	assert.ErrorIs(t, svc.Logout(context.Background(), "garbage"), ErrInvalidToken)
}

func TestRevokeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewTokenRepository(db)
	jti := "11111111-2222-3333-4444-555555555555"

	// A duplicate insert reads as the same revoked end state, not an error.
	require.NoError(t, repo.Revoke(context.Background(), jti, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(context.Background(), jti, time.Now().Add(time.Hour)))

	revoked, err := repo.IsRevoked(context.Background(), jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestConcurrentLogoutConverges(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))
	registerUser(t, db, "gabe")

	pair, err := svc.Login(context.Background(), "gabe", "correct-horse-battery")
	require.NoError(t, err)

	const calls = 4
	errs := make(chan error, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Logout(context.Background(), pair.Refresh)
		}()
	}
	wg.Wait()
	close(errs)

	// Every call observes the revoked end state: success, or the
	// already-revoked rejection. Never a raw storage error.
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidToken)
		}
	}

	_, err = svc.Refresh(context.Background(), pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewTokenRepository(db))
	user := registerUser(t, db, "erin")

	_, err := svc.ChangePassword(context.Background(), user.UserID, "wrong", "new-password-1", "new-password-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.ChangePassword(context.Background(), user.UserID, "correct-horse-battery", "new-password-1", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.ChangePassword(context.Background(), user.UserID, "correct-horse-battery", "correct-horse-battery", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrPasswordUnchanged)

	pair, err := svc.ChangePassword(context.Background(), user.UserID, "correct-horse-battery", "new-password-1", "new-password-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	_, err = svc.Login(context.Background(), "erin", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "erin", "new-password-1")
	assert.NoError(t, err)
}

func TestPasswordNeverSerializes(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "frank")

	raw, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), user.Password)
}
