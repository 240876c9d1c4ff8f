package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalogue entry. Read-only from the shop's perspective;
// rows come from seeding or an external import.
type Product struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Type      string    `gorm:"size:100;index" json:"type"`
	Name      string    `gorm:"size:100;index" json:"name"`
	Brand     string    `gorm:"size:100;index" json:"brand"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ProductID == uuid.Nil {
		p.ProductID = uuid.New()
	}
	return nil
}
