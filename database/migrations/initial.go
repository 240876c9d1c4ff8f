package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_carts_tables", &CreateCartsTables{})
	migration.Register("20260101000003_create_shops_tables", &CreateShopsTables{})
	migration.Register("20260101000004_create_reviews_tables", &CreateReviewsTables{})
	migration.Register("20260101000005_create_revoked_tokens_table", &CreateRevokedTokensTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: carts + cart_items --------

type CreateCartsTables struct{}

func (m *CreateCartsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: shops + tracks --------

type CreateShopsTables struct{}

func (m *CreateShopsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Shop{}, &models.Track{})
}

func (m *CreateShopsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("tracks", "shops")
}

// -------- 0005: opinions + scores --------

type CreateReviewsTables struct{}

func (m *CreateReviewsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Opinion{}, &models.Score{})
}

func (m *CreateReviewsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("scores", "opinions")
}

// -------- 0006: revoked_tokens --------

type CreateRevokedTokensTable struct{}

func (m *CreateRevokedTokensTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.RevokedToken{})
}

func (m *CreateRevokedTokensTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("revoked_tokens")
}
