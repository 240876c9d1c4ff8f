package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// CartService mutates the per-user cart. Every batch runs in one
// transaction with the cart row locked, so cart mutation and checkout
// serialize per user. Lines succeed or fail individually; a bad line never
// aborts the batch.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// CartLine is one requested (product, quantity) addition. The id stays a
// string so the response can echo exactly what the client sent, even when
// it is not a valid uuid.
type CartLine struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

// LineResult reports the outcome of one line.
type LineResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AddItems adds products to the user's cart. An existing line for the same
// product has its quantity raised; anything else creates a new line.
func (s *CartService) AddItems(ctx context.Context, userID uuid.UUID, lines []CartLine) ([]LineResult, error) {
	defer metrics.ObserveQuery("transaction")()

	results := make([]LineResult, 0, len(lines))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			results = append(results, addLine(tx, cart.CartID, line))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return results, nil
}

func addLine(tx *gorm.DB, cartID uuid.UUID, line CartLine) LineResult {
	productID, err := uuid.Parse(line.ID)
	if err != nil {
		return LineResult{ID: line.ID, Success: false, Message: "product not found"}
	}
	if line.Quantity < 1 {
		return LineResult{ID: line.ID, Success: false, Message: "quantity must be at least 1"}
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("product_id = ?", productID).Count(&exists).Error; err != nil {
		return LineResult{ID: line.ID, Success: false, Message: "product not found"}
	}
	if exists == 0 {
		return LineResult{ID: line.ID, Success: false, Message: "product not found"}
	}

	var item models.CartItem
	err = tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += line.Quantity
		if err := tx.Save(&item).Error; err != nil {
			return LineResult{ID: line.ID, Success: false, Message: "could not update cart"}
		}
		return LineResult{ID: line.ID, Success: true, Message: "quantity updated"}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: line.Quantity}
		if err := tx.Create(&item).Error; err != nil {
			return LineResult{ID: line.ID, Success: false, Message: "could not update cart"}
		}
		return LineResult{ID: line.ID, Success: true, Message: "added to cart"}
	default:
		return LineResult{ID: line.ID, Success: false, Message: "could not update cart"}
	}
}

// RemoveItems deletes the named products from the cart, reporting per line.
// The literal id "all" short-circuits: every line is deleted with no
// per-line validation.
func (s *CartService) RemoveItems(ctx context.Context, userID uuid.UUID, ids []string) ([]LineResult, bool, error) {
	defer metrics.ObserveQuery("transaction")()

	if removeAll(ids) {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			cart, err := lockCart(tx, userID)
			if err != nil {
				return err
			}
			return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			return nil, false, fmt.Errorf("empty cart: %w", err)
		}
		return nil, true, nil
	}

	results := make([]LineResult, 0, len(ids))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			results = append(results, removeLine(tx, cart.CartID, id))
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("remove from cart: %w", err)
	}
	return results, false, nil
}

func removeLine(tx *gorm.DB, cartID uuid.UUID, rawID string) LineResult {
	productID, err := uuid.Parse(rawID)
	if err != nil {
		return LineResult{ID: rawID, Success: false, Message: "product not found"}
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("product_id = ?", productID).Count(&exists).Error; err != nil || exists == 0 {
		return LineResult{ID: rawID, Success: false, Message: "product not found"}
	}

	res := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return LineResult{ID: rawID, Success: false, Message: "could not update cart"}
	}
	if res.RowsAffected == 0 {
		return LineResult{ID: rawID, Success: false, Message: "not in cart"}
	}
	return LineResult{ID: rawID, Success: true, Message: "removed from cart"}
}

func removeAll(ids []string) bool {
	return len(ids) == 1 && ids[0] == "all"
}

// lockCart reads the user's cart row with a row-level write lock, pinning
// it for the rest of the transaction. sqlite has no FOR UPDATE and
// serializes writers on its own, so the clause is skipped there.
func lockCart(tx *gorm.DB, userID uuid.UUID) (models.Cart, error) {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	if err := q.First(&cart, "user_id = ?", userID).Error; err != nil {
		return models.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}
