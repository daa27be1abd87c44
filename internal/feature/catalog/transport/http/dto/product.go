// Package dto defines data transfer objects for the catalog feature's HTTP transport layer.
package dto

import "shop_backend/internal/feature/catalog/domain/entity"

// ProductReq is the request body for creating or replacing a product.
// Price and Stock are pointers so that a legitimate zero value still passes
// the required check.
type ProductReq struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"required,max=2000"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    string   `json:"category" binding:"required"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
	ImageURL    string   `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

// ProductResponse is the public representation of a product listing.
type ProductResponse struct {
	ID          uint    `json:"id"`
	OwnerID     uint    `json:"owner_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `json:"is_active"`
}

// ToProductResponse maps a product entity to its public representation.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    string(p.Category),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

// ToProductResponses maps a slice of product entities.
func ToProductResponses(ps []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for i := range ps {
		out = append(out, ToProductResponse(&ps[i]))
	}
	return out
}
