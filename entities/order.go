package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is one of the fixed lifecycle values of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerPhone   string          `gorm:"not null" json:"customer_phone"`
	CustomerEmail   string          `json:"customer_email,omitempty"`
	DeliveryAddress string          `gorm:"not null" json:"delivery_address"`
	DeliveryDate    time.Time       `gorm:"type:date;not null" json:"delivery_date"` // calendar date at UTC midnight
	Notes           string          `json:"notes,omitempty"`
	PaymentProof    string          `json:"payment_proof,omitempty"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null;index" json:"status"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Timestamp
}

// OrderItem is a snapshot of a cart line. MenuItemID carries no foreign key;
// catalog deletes never reach order history.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name       string          `gorm:"not null" json:"name"`
	Category   string          `json:"category"`
	Tier       string          `json:"tier"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Position   int             `gorm:"not null" json:"-"`
	Timestamp
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
