package seeders

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a starter catalogue. Safe to run twice: existing rows
// are left alone, matched on (type, name, brand).
func SeedProducts(db *gorm.DB) error {
	products := []models.Product{
		{Type: "laptop", Name: "ThinkPad X1 Carbon", Brand: "Lenovo"},
		{Type: "laptop", Name: "MacBook Air M3", Brand: "Apple"},
		{Type: "laptop", Name: "XPS 13", Brand: "Dell"},
		{Type: "phone", Name: "Pixel 9", Brand: "Google"},
		{Type: "phone", Name: "Galaxy S25", Brand: "Samsung"},
		{Type: "phone", Name: "iPhone 16", Brand: "Apple"},
		{Type: "headphones", Name: "WH-1000XM5", Brand: "Sony"},
		{Type: "headphones", Name: "QuietComfort Ultra", Brand: "Bose"},
		{Type: "monitor", Name: "UltraSharp U2723QE", Brand: "Dell"},
		{Type: "keyboard", Name: "MX Keys S", Brand: "Logitech"},
	}

	for _, p := range products {
		var count int64
		if err := db.Model(&models.Product{}).
			Where("type = ? AND name = ? AND brand = ?", p.Type, p.Name, p.Brand).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
