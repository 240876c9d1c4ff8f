package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. AnonUser starts true and flips to false on the
// user's first completed checkout; it mirrors the purchase-gate predicate
// for reporting, the gate itself always checks purchase records.
type User struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	PhoneNumber string    `gorm:"size:15" json:"phone_number"`
	Image       string    `gorm:"size:255" json:"image"` // storage path of the avatar
	AnonUser    bool      `gorm:"not null;default:true" json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
