package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is an immutable purchase record, created when a non-empty cart is
// checked out. The owning user is reached through the cart.
type Shop struct {
	TrackID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"track_id"`
	CartID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Cart     *Cart     `gorm:"foreignKey:CartID;references:CartID" json:"-"`
	DateTime time.Time `gorm:"not null" json:"date_time"`
}

func (s *Shop) BeforeCreate(*gorm.DB) error {
	if s.TrackID == uuid.Nil {
		s.TrackID = uuid.New()
	}
	if s.DateTime.IsZero() {
		s.DateTime = time.Now()
	}
	return nil
}

// Track is one append-only status entry on a purchase's audit trail.
type Track struct {
	TrackEntryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"track_id"`
	ShopID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Shop         *Shop     `gorm:"foreignKey:ShopID;references:TrackID" json:"-"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	DateTime     time.Time `gorm:"not null" json:"date_time"`
}

func (t *Track) BeforeCreate(*gorm.DB) error {
	if t.TrackEntryID == uuid.Nil {
		t.TrackEntryID = uuid.New()
	}
	if t.DateTime.IsZero() {
		t.DateTime = time.Now()
	}
	return nil
}
