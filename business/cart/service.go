package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shopLens/domain"
	"shopLens/pkg/logger"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrShippingMissing = errors.New("complete shipping address is required")
)

// Shipping is collected at checkout and snapshotted on the order.
type Shipping struct {
	Address string
	City    string
	Zip     string
}

func (s Shipping) complete() bool {
	return s.Address != "" && s.City != "" && s.Zip != ""
}

type CartRepository interface {
	Upsert(ctx context.Context, item *domain.CartItem) error
	ListByUser(ctx context.Context, userID uint) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error
	Delete(ctx context.Context, userID, itemID uint) error
	ClearByUser(ctx context.Context, userID uint) error
}

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Order, error)
}

type Service struct {
	cartRepo   CartRepository
	ordersRepo OrdersRepository
}

func NewService(cartRepo CartRepository, ordersRepo OrdersRepository) *Service {
	return &Service{cartRepo: cartRepo, ordersRepo: ordersRepo}
}

func (s *Service) AddItem(ctx context.Context, item *domain.CartItem) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	return s.cartRepo.Upsert(ctx, item)
}

func (s *Service) ListItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}

	return s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return s.cartRepo.Delete(ctx, userID, itemID)
}

func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	return s.cartRepo.ClearByUser(ctx, userID)
}

// Checkout turns the cart into a pending order and clears the cart.
// Prices were snapshotted when items were added, so the order total is
// what the user saw in the cart.
func (s *Service) Checkout(ctx context.Context, userID uint, shipping Shipping) (*domain.Order, error) {
	if !shipping.complete() {
		return nil, ErrShippingMissing
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := s.buildOrder(userID, shipping, items)

	if err := s.ordersRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearByUser(ctx, userID); err != nil {
		logger.Error("failed to clear cart after checkout", "user_id", userID, "error", err)
	}

	logger.Info("order created", "order_id", order.ID, "user_id", userID, "total", order.Total)

	return order, nil
}

// BuyNow orders a single item directly, bypassing the cart.
func (s *Service) BuyNow(ctx context.Context, userID uint, item domain.CartItem, shipping Shipping) (*domain.Order, error) {
	if !shipping.complete() {
		return nil, ErrShippingMissing
	}

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	order := s.buildOrder(userID, shipping, []domain.CartItem{item})

	if err := s.ordersRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("buy-now order created", "order_id", order.ID, "user_id", userID, "total", order.Total)

	return order, nil
}

func (s *Service) buildOrder(userID uint, shipping Shipping, items []domain.CartItem) *domain.Order {
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingZip:     shipping.Zip,
	}

	for _, item := range items {
		order.Total += item.Price * float64(item.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Source:    item.Source,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return order
}

func (s *Service) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.ordersRepo.ListByUser(ctx, userID)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.ordersRepo.GetByID(ctx, id)
}
