// Package services holds the business rules. Services own transactions and
// sentinel errors; controllers translate the sentinels into HTTP statuses.
package services

import "errors"

var (
	// ErrConflict covers duplicate username/email at registration.
	ErrConflict = errors.New("username or email already in use")

	// ErrInvalidCredentials is deliberately generic so login never reveals
	// whether the username exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, expired and revoked refresh tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound is the service-level missing-row error.
	ErrNotFound = errors.New("not found")

	// ErrCartEmpty means checkout found zero cart lines. It is an observable
	// no-op, not a failure.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrAlreadyScored means the user already scored this product.
	ErrAlreadyScored = errors.New("you have already scored this product")

	// ErrNotPurchased means the purchase gate rejected the caller.
	ErrNotPurchased = errors.New("you must complete a purchase first")

	// ErrPasswordMismatch means new password and its repeat differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordUnchanged means the new password equals the old one.
	ErrPasswordUnchanged = errors.New("new password must differ from the old one")
)
