package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	Status          string      `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Total           float64     `json:"total" gorm:"not null"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:varchar(255);not null"`
	ShippingCity    string      `json:"shipping_city" gorm:"type:varchar(100);not null"`
	ShippingZip     string      `json:"shipping_zip" gorm:"type:varchar(20);not null"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID string    `json:"product_id" gorm:"type:varchar(100);not null"`
	Source    string    `json:"source" gorm:"type:varchar(50);not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
