// Package handler provides the HTTP handlers for the orders feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/api"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/transport/http/dto"
	"shop_backend/internal/feature/orders/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// OrderUsecase defines the order engine operations consumed by the HTTP layer.
// Following Go convention the interface is defined by the consumer (handler),
// not the provider (usecase).
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, buyerID uint, items []usecase.OrderItemInput, addr entity.ShippingAddress) (*entity.Order, error)
	UpdateStatus(ctx context.Context, buyerID, orderID uint, newStatus entity.Status) (*entity.Order, error)
	GetOrder(ctx context.Context, buyerID, orderID uint) (*entity.Order, error)
	ListOrders(ctx context.Context, buyerID uint) ([]entity.Order, error)
}

// OrderHandler handles the HTTP requests for order placement and lifecycle.
type OrderHandler struct {
	orders OrderUsecase
}

// NewOrderHandler creates a new OrderHandler instance.
func NewOrderHandler(orders OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid order id"})
		return 0, false
	}
	return uint(id), true
}

// writeOrderError maps order engine failures to HTTP statuses. An
// insufficient-stock failure includes the product, available and requested
// quantities so the buyer knows exactly which line lost the race.
func writeOrderError(c *gin.Context, err error) {
	var stockErr *catalogusecase.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "insufficient stock",
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
	case errors.Is(err, catalogusecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "order not found"})
	case errors.Is(err, usecase.ErrNotOrderOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not authorized for this order"})
	case errors.Is(err, usecase.ErrEmptyOrder), errors.Is(err, usecase.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrInvalidTransition):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	buyerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	var req dto.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("order validation failed", "error", err, "user_id", buyerID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	addr := entity.ShippingAddress{
		Street:  req.ShippingAddress.Street,
		City:    req.ShippingAddress.City,
		State:   req.ShippingAddress.State,
		Zip:     req.ShippingAddress.Zip,
		Country: req.ShippingAddress.Country,
	}
	order, err := h.orders.PlaceOrder(c.Request.Context(), buyerID, items, addr)
	if err != nil {
		slog.Warn("order placement failed", "error", err, "user_id", buyerID)
		writeOrderError(c, err)
		return
	}
	slog.Info("order placed", "order_id", order.ID, "user_id", buyerID, "total", order.Total)
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	buyerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	os, err := h.orders.ListOrders(c.Request.Context(), buyerID)
	if err != nil {
		slog.Error("order list failed", "error", err, "user_id", buyerID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	out := dto.ToOrderResponses(os)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "orders": out})
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	buyerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := orderID(c)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), buyerID, id)
	if err != nil {
		writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// UpdateStatus handles PUT /orders/:id/status. The only accepted transition
// is pending -> cancelled, by the buyer who placed the order.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	buyerID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return
	}
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), buyerID, id, entity.Status(req.Status))
	if err != nil {
		slog.Warn("order status update failed", "error", err, "order_id", id, "user_id", buyerID)
		writeOrderError(c, err)
		return
	}
	slog.Info("order status updated", "order_id", id, "status", order.Status, "user_id", buyerID)
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
