// Package auth issues and validates the access/refresh token pair and holds
// the password hashing helpers.
//
// Both tokens are HS256 JWTs. The access token (default 60 min) authorizes
// requests; the refresh token (default 1 day) mints new access tokens and
// can be revoked by blacklisting its jti (see app/repositories, the
// revoked_tokens table). Revocation is store-backed so it holds across
// service instances.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/bazaar/config"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrInvalidToken covers malformed, expired, badly signed and wrong-type
// tokens. Callers get one generic error so responses never reveal which
// check failed.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the typed JWT payload. RegisteredClaims.ID carries the jti used
// by the revocation table.
type Claims struct {
	UserID string `json:"user_id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// NewPair issues a fresh access+refresh pair for the given user.
func NewPair(userID uuid.UUID) (Pair, error) {
	access, err := Generate(userID, TypeAccess, config.AccessTokenTTL())
	if err != nil {
		return Pair{}, err
	}
	refresh, err := Generate(userID, TypeRefresh, config.RefreshTokenTTL())
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// Generate creates a signed token of the given type with a fresh jti.
func Generate(userID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ParseAccess validates an access token and returns its claims.
func ParseAccess(token string) (*Claims, error) {
	return parse(token, TypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims.
// It does NOT consult the revocation table; that check belongs to the
// session service, which owns the store.
func ParseRefresh(token string) (*Claims, error) {
	return parse(token, TypeRefresh)
}

func parse(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != wantType {
		return nil, ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Subject returns the claims' user id as a uuid. Parse already guaranteed
// it is well formed.
func (c *Claims) Subject() uuid.UUID {
	id, _ := uuid.Parse(c.UserID)
	return id
}
