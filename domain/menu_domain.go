package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetMenuItems   = "menu items retrieved successfully"
	MessageSuccessGetMenuItem    = "menu item retrieved successfully"
	MessageSuccessCreateMenuItem = "menu item created successfully"
	MessageSuccessUpdateMenuItem = "menu item updated successfully"
	MessageSuccessDeleteMenuItem = "menu item deleted successfully"
	MessageSuccessQuoteCart      = "cart priced successfully"
	MessageFailedGetMenuItems    = "failed to retrieve menu items"
	MessageFailedCreateMenuItem  = "failed to create menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedDeleteMenuItem  = "failed to delete menu item"
	MessageFailedQuoteCart       = "failed to price cart"

	ErrMenuItemNotFound = errors.New("menu item not found")
)

type (
	MenuFilter struct {
		Category      string
		Tier          string
		AvailableOnly bool
	}

	MenuItemResponse struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Tier        string          `json:"tier"`
		Price       decimal.Decimal `json:"price"`
		Available   bool            `json:"available"`
		CreatedAt   time.Time       `json:"created_at"`
		UpdatedAt   time.Time       `json:"updated_at"`
	}

	CreateMenuItemRequest struct {
		Name        string           `json:"name" validate:"required"`
		Description string           `json:"description"`
		Category    string           `json:"category" validate:"required,oneof=infant general diabetic"`
		Tier        string           `json:"tier" validate:"required,oneof=regular vip"`
		Price       *decimal.Decimal `json:"price" validate:"required"`
		Available   *bool            `json:"available"`
	}

	// UpdateMenuItemRequest only changes the fields that are present.
	UpdateMenuItemRequest struct {
		Name        *string          `json:"name" validate:"omitempty,min=1"`
		Description *string          `json:"description"`
		Category    *string          `json:"category" validate:"omitempty,oneof=infant general diabetic"`
		Tier        *string          `json:"tier" validate:"omitempty,oneof=regular vip"`
		Price       *decimal.Decimal `json:"price"`
		Available   *bool            `json:"available"`
	}

	QuoteLineRequest struct {
		MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
		Quantity   int    `json:"quantity" validate:"min=0,max=999"`
	}

	QuoteCartRequest struct {
		Items []QuoteLineRequest `json:"items" validate:"dive"`
	}

	CartLineResponse struct {
		MenuItemID string          `json:"menu_item_id"`
		Name       string          `json:"name"`
		Category   string          `json:"category"`
		Tier       string          `json:"tier"`
		Price      decimal.Decimal `json:"price"`
		Quantity   int             `json:"quantity"`
		Subtotal   decimal.Decimal `json:"subtotal"`
	}

	CartQuoteResponse struct {
		Lines     []CartLineResponse `json:"lines"`
		Total     decimal.Decimal    `json:"total"`
		ItemCount int                `json:"item_count"`
	}
)
