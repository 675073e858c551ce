package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopLens/domain"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert adds the product to the user's cart or bumps the quantity when
// the same product from the same source is already there.
func (r *CartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	var existing domain.CartItem

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND source = ?", item.UserID, item.ProductID, item.Source).
		First(&existing).Error

	if err == nil {
		existing.Quantity += item.Quantity
		*item = existing

		return r.db.WithContext(ctx).Save(&existing).Error
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(item).Error
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	var items []domain.CartItem

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND id = ?", userID, itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, itemID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&domain.CartItem{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *CartRepository) ClearByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
}
