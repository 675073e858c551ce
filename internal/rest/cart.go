package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopLens/business/cart"
	"shopLens/domain"
	"shopLens/internal/repository/postgres"
	"shopLens/pkg/logger"
)

type CartService interface {
	AddItem(ctx context.Context, item *domain.CartItem) error
	ListItems(ctx context.Context, userID uint) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID uint) error
	ClearCart(ctx context.Context, userID uint) error
	Checkout(ctx context.Context, userID uint, shipping cart.Shipping) (*domain.Order, error)
	BuyNow(ctx context.Context, userID uint, item domain.CartItem, shipping cart.Shipping) (*domain.Order, error)
	ListOrders(ctx context.Context, userID uint) ([]domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type AddCartItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Source    string  `json:"source" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	ImageURL  string  `json:"image_url"`
	BuyURL    string  `json:"buy_url"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	var req AddCartItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind cart item request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart item request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item := &domain.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Source:    req.Source,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		BuyURL:    req.BuyURL,
		Price:     req.Price,
		Quantity:  req.Quantity,
	}

	if err := h.cartService.AddItem(ctx, item); err != nil {
		logger.Error("Failed to add cart item", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.cartService.ListItems(ctx, userID)
	if err != nil {
		logger.Error("Failed to list cart items", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_price": total,
		"item_count":  len(items),
	})
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid item id"})
	}

	var req UpdateQuantityRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind quantity request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate quantity request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.UpdateQuantity(ctx, userID, itemID, req.Quantity); err != nil {
		if errors.Is(err, postgres.ErrCartItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}

		logger.Error("Failed to update quantity", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Quantity updated successfully"))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	itemID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.RemoveItem(ctx, userID, itemID); err != nil {
		if errors.Is(err, postgres.ErrCartItemNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}

		logger.Error("Failed to remove cart item", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Item removed successfully"))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, userID); err != nil {
		logger.Error("Failed to clear cart", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart cleared successfully"))
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	ShippingCity    string `json:"shipping_city" validate:"required"`
	ShippingZip     string `json:"shipping_zip" validate:"required"`
}

func (h *CartHandler) Checkout(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	var req CheckoutRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind checkout request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate checkout request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.cartService.Checkout(ctx, userID, cart.Shipping{
		Address: req.ShippingAddress,
		City:    req.ShippingCity,
		Zip:     req.ShippingZip,
	})
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) || errors.Is(err, cart.ErrShippingMissing) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}

		logger.Error("Failed to checkout", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

type BuyNowRequest struct {
	Item     AddCartItemRequest `json:"item" validate:"required"`
	Shipping CheckoutRequest    `json:"shipping" validate:"required"`
}

// BuyNow orders one product directly without touching the cart.
func (h *CartHandler) BuyNow(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	var req BuyNowRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind buy-now request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate buy-now request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item := domain.CartItem{
		UserID:    userID,
		ProductID: req.Item.ProductID,
		Source:    req.Item.Source,
		Title:     req.Item.Title,
		ImageURL:  req.Item.ImageURL,
		BuyURL:    req.Item.BuyURL,
		Price:     req.Item.Price,
		Quantity:  req.Item.Quantity,
	}

	order, err := h.cartService.BuyNow(ctx, userID, item, cart.Shipping{
		Address: req.Shipping.ShippingAddress,
		City:    req.Shipping.ShippingCity,
		Zip:     req.Shipping.ShippingZip,
	})
	if err != nil {
		if errors.Is(err, cart.ErrShippingMissing) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}

		logger.Error("Failed to buy now", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *CartHandler) ListOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.cartService.ListOrders(ctx, userID)
	if err != nil {
		logger.Error("Failed to list orders", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(orders))
}

func (h *CartHandler) GetOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.cartService.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}

		logger.Error("Failed to get order", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if order.UserID != userID {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "order not found"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(v), nil
}
