package models

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether an order in status s is finished.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	CanteenID   uint        `gorm:"index;not null" json:"canteen_id"`
	Status      OrderStatus `gorm:"not null" json:"status"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	QRCode      string      `json:"qr_code,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

// OrderLine is the frozen copy of one cart line at checkout time.
// Name and UnitPrice are snapshots; later catalog edits never touch them.
type OrderLine struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       string  `gorm:"index;size:36;not null" json:"order_id"`
	FoodItemID    uint    `gorm:"index;not null" json:"food_item_id"`
	Name          string  `gorm:"not null" json:"name"`
	UnitPrice     float64 `gorm:"not null" json:"unit_price"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	Customization string  `json:"customization,omitempty"`
}
