package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is the per-user staging area, created together with the User at
// registration. Exactly one per user; it survives checkout (only its items
// are drained).
type Cart struct {
	CartID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cart_id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Items  []CartItem `gorm:"foreignKey:CartID;references:CartID" json:"items,omitempty"`
}

func (c *Cart) BeforeCreate(*gorm.DB) error {
	if c.CartID == uuid.Nil {
		c.CartID = uuid.New()
	}
	return nil
}

// CartItem is one (product, quantity) line. One line per product per cart;
// adding the same product again raises the quantity.
type CartItem struct {
	CartItemID uuid.UUID `gorm:"type:uuid;primaryKey" json:"cart_item_id"`
	CartID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity   int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Cart       *Cart     `gorm:"foreignKey:CartID;references:CartID;constraint:OnDelete:CASCADE" json:"-"`
	Product    *Product  `gorm:"foreignKey:ProductID;references:ProductID" json:"-"`
}

func (i *CartItem) BeforeCreate(*gorm.DB) error {
	if i.CartItemID == uuid.Nil {
		i.CartItemID = uuid.New()
	}
	return nil
}
