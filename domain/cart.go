package domain

import "time"

// CartItem stores a snapshot of the external product at the moment it was
// added. Products come from outside catalogs so there is no local product
// table to reference.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ProductID string    `json:"product_id" gorm:"type:varchar(100);not null"`
	Source    string    `json:"source" gorm:"type:varchar(50);not null"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	ImageURL  string    `json:"image_url" gorm:"type:text"`
	BuyURL    string    `json:"buy_url" gorm:"type:text"`
	Price     float64   `json:"price" gorm:"not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
