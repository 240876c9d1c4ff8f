package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPair(t *testing.T) {
	userID := uuid.New()

	pair, err := NewPair(userID)
	require.NoError(t, err)

	access, err := ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, userID, access.Subject())
	assert.Equal(t, TypeAccess, access.Type)
	assert.NotEmpty(t, access.ID, "every token carries a jti")

	refresh, err := ParseRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refresh.Subject())
	assert.Equal(t, TypeRefresh, refresh.Type)

	assert.NotEqual(t, access.ID, refresh.ID, "access and refresh get distinct jtis")
}

func TestTokenTypeEnforced(t *testing.T) {
	pair, err := NewPair(uuid.New())
	require.NoError(t, err)

	_, err = ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseRefresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := Generate(uuid.New(), TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := ParseAccess(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := Generate(uuid.New(), TypeAccess, time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseAccess(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
