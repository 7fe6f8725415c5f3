package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessSubmitOrder       = "Order received successfully"
	MessageSuccessGetOrders         = "orders retrieved successfully"
	MessageSuccessGetOrder          = "order retrieved successfully"
	MessageSuccessUpdateOrderStatus = "order status updated successfully"
	MessageSuccessGetOrderStats     = "order statistics retrieved successfully"

	MessageFailedSubmitOrder       = "Error submitting order. Please try again or contact us directly."
	MessageFailedGetOrders         = "failed to retrieve orders"
	MessageFailedUpdateOrderStatus = "failed to update order status"
	MessageFailedGetOrderStats     = "failed to retrieve order statistics"

	ErrEmptyCart               = errors.New("cart is empty")
	ErrBlobWrite               = errors.New("failed to store payment proof")
	ErrPersistence             = errors.New("failed to save order")
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")

	// MaxOrderAmount is the largest value a decimal(10,2) money column holds.
	MaxOrderAmount = decimal.RequireFromString("99999999.99")
)

// MaxLineQuantity caps a single cart line, including duplicates merged into it.
const MaxLineQuantity = 999

type (
	// CartLineRequest is a cart line as captured by the client, price included.
	CartLineRequest struct {
		MenuItemID string          `json:"menu_item_id" validate:"required,uuid"`
		Name       string          `json:"name" validate:"required"`
		Category   string          `json:"category" validate:"omitempty,oneof=infant general diabetic"`
		Tier       string          `json:"tier" validate:"omitempty,oneof=regular vip"`
		Price      decimal.Decimal `json:"price"`
		Quantity   int             `json:"quantity" validate:"min=1,max=999"`
	}

	// ProofFile is an uploaded payment proof, already read into memory.
	ProofFile struct {
		Filename string
		Data     []byte
	}

	SubmitOrderRequest struct {
		CustomerName    string            `json:"customer_name" validate:"required"`
		CustomerPhone   string            `json:"customer_phone" validate:"required"`
		CustomerEmail   string            `json:"customer_email" validate:"omitempty,email"`
		DeliveryAddress string            `json:"delivery_address" validate:"required"`
		DeliveryDate    string            `json:"delivery_date" validate:"required"`
		Notes           string            `json:"notes"`
		Items           []CartLineRequest `json:"items" validate:"dive"`
		PaymentProof    *ProofFile        `json:"-"`
	}

	SubmitOrderResponse struct {
		OrderID         string `json:"order_id"`
		Message         string `json:"message"`
		PaymentProofSet bool   `json:"payment_proof_attached"`
	}

	OrderItemResponse struct {
		ID         string          `json:"id"`
		MenuItemID string          `json:"menu_item_id"`
		Name       string          `json:"name"`
		Category   string          `json:"category"`
		Tier       string          `json:"tier"`
		Price      decimal.Decimal `json:"price"`
		Quantity   int             `json:"quantity"`
		Subtotal   decimal.Decimal `json:"subtotal"`
	}

	OrderResponse struct {
		ID              string              `json:"id"`
		CustomerName    string              `json:"customer_name"`
		CustomerPhone   string              `json:"customer_phone"`
		CustomerEmail   string              `json:"customer_email,omitempty"`
		DeliveryAddress string              `json:"delivery_address"`
		DeliveryDate    string              `json:"delivery_date"`
		Notes           string              `json:"notes,omitempty"`
		PaymentProof    string              `json:"payment_proof,omitempty"`
		TotalAmount     decimal.Decimal     `json:"total_amount"`
		Status          string              `json:"status"`
		Items           []OrderItemResponse `json:"items"`
		CreatedAt       time.Time           `json:"created_at"`
		UpdatedAt       time.Time           `json:"updated_at"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}

	OrderStatsResponse struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
		Preparing int64 `json:"preparing"`
		Delivered int64 `json:"delivered"`
		Cancelled int64 `json:"cancelled"`
	}

	// OrderEvent is published to the event stream on lifecycle changes.
	OrderEvent struct {
		Type        string          `json:"type"`
		OrderID     string          `json:"order_id"`
		Status      string          `json:"status"`
		PrevStatus  string          `json:"previous_status,omitempty"`
		TotalAmount decimal.Decimal `json:"total_amount"`
		OccurredAt  time.Time       `json:"occurred_at"`
	}
)

const EventOrderStatusChanged = "order.status_changed"
