package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleInput struct {
	Username string `json:"username" validate:"required,alpha_dash,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"nullable,max=15"`
	Score    int    `json:"score" validate:"gte=0,lte=100"`
	ID       string `json:"id" validate:"nullable,uuid"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(&sampleInput{
		Username: "alice_1",
		Email:    "alice@example.com",
		Score:    100,
		ID:       "0b9fba5e-52fc-4e0e-9c6a-30ee7db791e2",
	})
	assert.False(t, HasErrors(errs), "got: %v", errs)
}

func TestRequired(t *testing.T) {
	errs := Struct(&sampleInput{Email: "a@b.co"})
	assert.Contains(t, errs, "username")
	assert.NotContains(t, errs, "phone", "nullable fields may stay empty")
}

func TestEmail(t *testing.T) {
	errs := Struct(&sampleInput{Username: "bob", Email: "not-an-email"})
	assert.Contains(t, errs, "email")
}

func TestAlphaDash(t *testing.T) {
	errs := Struct(&sampleInput{Username: "bad name!", Email: "a@b.co"})
	assert.Contains(t, errs, "username")
}

func TestMinLength(t *testing.T) {
	errs := Struct(&sampleInput{Username: "ab", Email: "a@b.co"})
	assert.Contains(t, errs, "username")
}

func TestNumericBounds(t *testing.T) {
	errs := Struct(&sampleInput{Username: "bob", Email: "a@b.co", Score: 101})
	assert.Contains(t, errs, "score")

	errs = Struct(&sampleInput{Username: "bob", Email: "a@b.co", Score: -1})
	assert.Contains(t, errs, "score")

	// Zero is a legal score, not a missing one.
	errs = Struct(&sampleInput{Username: "bob", Email: "a@b.co", Score: 0})
	assert.NotContains(t, errs, "score")
}

func TestUUIDRule(t *testing.T) {
	errs := Struct(&sampleInput{Username: "bob", Email: "a@b.co", ID: "nope"})
	assert.Contains(t, errs, "id")
}

func TestErrorKeysUseJSONNames(t *testing.T) {
	errs := Struct(&sampleInput{})
	for key := range errs {
		assert.NotContains(t, key, "Username", "keys must match the wire format")
	}
}
