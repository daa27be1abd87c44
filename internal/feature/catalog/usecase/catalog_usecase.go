package usecase

import (
	"context"

	"shop_backend/internal/feature/catalog/domain/entity"
)

// ProductRepository abstracts the persistence layer for products.
// Following Go convention the interface is defined by the consumer (usecase),
// not the provider (adapters).
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, p *entity.Product) error

	// FindByID retrieves a product by id, returning ErrProductNotFound when missing.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// FindByOwner retrieves all products listed by the given user, newest first.
	FindByOwner(ctx context.Context, ownerID uint) ([]entity.Product, error)

	// FindShopView retrieves active, in-stock products not owned by viewerID,
	// newest first.
	FindShopView(ctx context.Context, viewerID uint) ([]entity.Product, error)

	// Update persists all fields of an existing product.
	Update(ctx context.Context, p *entity.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id uint) error
}

// ProductInput carries the owner-editable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    entity.Category
	Stock       int
	ImageURL    string
	IsActive    bool
}

// catalogUsecase implements the catalog business rules: owner-scoped
// mutation, open reads, and the shop browsing view.
type catalogUsecase struct {
	products ProductRepository
}

// NewCatalogUsecase creates a new catalogUsecase instance.
func NewCatalogUsecase(products ProductRepository) *catalogUsecase {
	return &catalogUsecase{products: products}
}

func validateInput(in ProductInput) error {
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Price < 0 {
		return ErrInvalidPrice
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// CreateProduct lists a new product owned by ownerID.
func (u *catalogUsecase) CreateProduct(ctx context.Context, ownerID uint, in ProductInput) (*entity.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.ImageURL == "" {
		in.ImageURL = entity.DefaultImageURL
	}
	p := &entity.Product{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct returns a product by id. Any authenticated user may read a
// listing; only mutation is owner-scoped.
func (u *catalogUsecase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// ListOwn returns the requesting user's own listings (the management surface).
func (u *catalogUsecase) ListOwn(ctx context.Context, ownerID uint) ([]entity.Product, error) {
	return u.products.FindByOwner(ctx, ownerID)
}

// ShopView returns the browsing surface: active products with stock, listed
// by other sellers.
func (u *catalogUsecase) ShopView(ctx context.Context, viewerID uint) ([]entity.Product, error) {
	return u.products.FindShopView(ctx, viewerID)
}

// UpdateProduct replaces the owner-editable fields of a product.
// Fails with ErrNotProductOwner when requesterID does not own it.
func (u *catalogUsecase) UpdateProduct(ctx context.Context, requesterID, id uint, in ProductInput) (*entity.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != requesterID {
		return nil, ErrNotProductOwner
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Stock = in.Stock
	if in.ImageURL != "" {
		p.ImageURL = in.ImageURL
	}
	p.IsActive = in.IsActive
	if err := u.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product. Fails with ErrNotProductOwner when
// requesterID does not own it.
func (u *catalogUsecase) DeleteProduct(ctx context.Context, requesterID, id uint) error {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != requesterID {
		return ErrNotProductOwner
	}
	return u.products.Delete(ctx, p.ID)
}
