// Package entity defines the domain models for the catalog feature.
package entity

import "time"

// Category classifies a product. The set is closed; anything outside it is
// rejected at the boundary.
type Category string

const (
	CategoryElectronics   Category = "Electronics"
	CategoryClothing      Category = "Clothing"
	CategoryHomeGarden    Category = "Home & Garden"
	CategorySports        Category = "Sports"
	CategoryBooks         Category = "Books"
	CategoryToys          Category = "Toys"
	CategoryFoodBeverages Category = "Food & Beverages"
	CategoryHealthBeauty  Category = "Health & Beauty"
	CategoryAutomotive    Category = "Automotive"
	CategoryOther         Category = "Other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryHomeGarden,
		CategorySports, CategoryBooks, CategoryToys, CategoryFoodBeverages,
		CategoryHealthBeauty, CategoryAutomotive, CategoryOther:
		return true
	}
	return false
}

// DefaultImageURL is used when a product is created without an image.
const DefaultImageURL = "https://via.placeholder.com/300x300?text=No+Image"

// Product represents an item listed for sale by a single owner.
// Stock is only ever mutated through the owner's update endpoint or the
// order engine's conditional decrement; it must never go negative.
type Product struct {
	// ID is the unique identifier for the product.
	ID uint `gorm:"primaryKey"`

	// OwnerID references the user who listed the product.
	OwnerID uint `gorm:"index;not null"`

	// Name is the product title, at most 100 characters.
	Name string `gorm:"size:100;not null"`

	// Description is the long-form listing text, at most 2000 characters.
	Description string `gorm:"size:2000;not null"`

	// Price is the current unit price. Orders capture it at reservation
	// time, so later changes never affect placed orders.
	Price float64 `gorm:"not null"`

	// Category is the closed classification of the product.
	Category Category `gorm:"size:32;not null"`

	// Stock is the number of units available for purchase.
	Stock int `gorm:"not null;default:0"`

	// ImageURL points at the listing image.
	ImageURL string `gorm:"size:512"`

	// IsActive controls whether the product appears in the shop view.
	IsActive bool `gorm:"not null;default:true"`

	// CreatedAt is the timestamp when the product was listed.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the product was last updated.
	UpdatedAt time.Time
}
