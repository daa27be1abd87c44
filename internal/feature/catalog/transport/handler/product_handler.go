// Package handler provides the HTTP handlers for the catalog feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/transport/http/dto"
	"shop_backend/internal/feature/catalog/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// CatalogUsecase defines the catalog operations consumed by the HTTP layer.
// Following Go convention the interface is defined by the consumer (handler),
// not the provider (usecase).
type CatalogUsecase interface {
	CreateProduct(ctx context.Context, ownerID uint, in usecase.ProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	ListOwn(ctx context.Context, ownerID uint) ([]entity.Product, error)
	ShopView(ctx context.Context, viewerID uint) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, requesterID, id uint, in usecase.ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, requesterID, id uint) error
}

// ProductHandler handles the HTTP requests for product management and browsing.
type ProductHandler struct {
	catalog CatalogUsecase
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(catalog CatalogUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// toInput converts a bound request into the usecase input shape.
func toInput(req dto.ProductReq) usecase.ProductInput {
	in := usecase.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    entity.Category(req.Category),
		Stock:       *req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	return in
}

func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid product id"})
		return 0, false
	}
	return uint(id), true
}

// writeCatalogError maps catalog usecase failures to HTTP statuses.
func writeCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "product not found"})
	case errors.Is(err, usecase.ErrNotProductOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not authorized for this product"})
	case errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrInvalidPrice),
		errors.Is(err, usecase.ErrInvalidStock):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	ownerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("product validation failed", "error", err, "user_id", ownerID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), ownerID, toInput(req))
	if err != nil {
		slog.Warn("product create failed", "error", err, "user_id", ownerID)
		writeCatalogError(c, err)
		return
	}
	slog.Info("product created", "product_id", p.ID, "user_id", ownerID)
	c.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// ListOwn handles GET /products: the owner's management surface.
func (h *ProductHandler) ListOwn(c *gin.Context) {
	ownerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	ps, err := h.catalog.ListOwn(c.Request.Context(), ownerID)
	if err != nil {
		slog.Error("product list failed", "error", err, "user_id", ownerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	out := dto.ToProductResponses(ps)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "products": out})
}

// Shop handles GET /products/shop: the browsing surface, excluding the
// viewer's own listings.
func (h *ProductHandler) Shop(c *gin.Context) {
	viewerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	ps, err := h.catalog.ShopView(c.Request.Context(), viewerID)
	if err != nil {
		slog.Error("shop view failed", "error", err, "user_id", viewerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	out := dto.ToProductResponses(ps)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "products": out})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Update handles PUT /products/:id. Owner only.
func (h *ProductHandler) Update(c *gin.Context) {
	requesterID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}
	var req dto.ProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), requesterID, id, toInput(req))
	if err != nil {
		slog.Warn("product update failed", "error", err, "product_id", id, "user_id", requesterID)
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Delete handles DELETE /products/:id. Owner only.
func (h *ProductHandler) Delete(c *gin.Context) {
	requesterID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := productID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), requesterID, id); err != nil {
		slog.Warn("product delete failed", "error", err, "product_id", id, "user_id", requesterID)
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "product deleted"})
}
