package menu

import (
	"context"
	"errors"
	"fmt"

	"tmm-backend/domain"
	"tmm-backend/entities"
	"tmm-backend/pkg/cart"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItemResponse, error)
		GetMenuItem(ctx context.Context, id string) (domain.MenuItemResponse, error)
		CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, id string) error
		QuoteCart(ctx context.Context, req domain.QuoteCartRequest) (domain.CartQuoteResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
	}
)

func NewMenuService(menuRepository MenuRepository) MenuService {
	return &menuService{menuRepository: menuRepository}
}

func toMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	return domain.MenuItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Tier:        item.Tier,
		Price:       item.Price,
		Available:   item.Available,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func (s *menuService) getMenuItem(ctx context.Context, id string) (*entities.MenuItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrMenuItemNotFound
	}
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *menuService) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItemResponse, error) {
	if filter.Category != "" && !entities.ValidCategory(filter.Category) {
		return nil, domain.NewValidationError("category", "must be one of [infant general diabetic]")
	}
	if filter.Tier != "" && !entities.ValidTier(filter.Tier) {
		return nil, domain.NewValidationError("tier", "must be one of [regular vip]")
	}

	items, err := s.menuRepository.ListMenuItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toMenuItemResponse(item))
	}
	return response, nil
}

func (s *menuService) GetMenuItem(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error) {
	if req.Price == nil {
		return domain.MenuItemResponse{}, domain.NewValidationError("price", "is required")
	}
	if req.Price.IsNegative() {
		return domain.MenuItemResponse{}, domain.NewValidationError("price", "must not be negative")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := &entities.MenuItem{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tier:        req.Tier,
		Price:       req.Price.Round(2),
		Available:   available,
	}

	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		if !entities.ValidCategory(*req.Category) {
			return domain.MenuItemResponse{}, domain.NewValidationError("category", "must be one of [infant general diabetic]")
		}
		item.Category = *req.Category
	}
	if req.Tier != nil {
		if !entities.ValidTier(*req.Tier) {
			return domain.MenuItemResponse{}, domain.NewValidationError("tier", "must be one of [regular vip]")
		}
		item.Tier = *req.Tier
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.MenuItemResponse{}, domain.NewValidationError("price", "must not be negative")
		}
		item.Price = req.Price.Round(2)
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return toMenuItemResponse(item), nil
}

// DeleteMenuItem removes the catalog entry only. Orders keep their own line
// snapshots and are unaffected.
func (s *menuService) DeleteMenuItem(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrMenuItemNotFound
	}
	affected, err := s.menuRepository.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

// QuoteCart prices a selection against the live catalog without storing
// anything. The returned lines carry the snapshot a client submits later.
func (s *menuService) QuoteCart(ctx context.Context, req domain.QuoteCartRequest) (domain.CartQuoteResponse, error) {
	c := cart.New()
	for i, line := range req.Items {
		item, err := s.getMenuItem(ctx, line.MenuItemID)
		if err != nil {
			return domain.CartQuoteResponse{}, err
		}
		if !item.Available {
			return domain.CartQuoteResponse{}, domain.NewValidationError(
				fmt.Sprintf("items[%d].menu_item_id", i),
				fmt.Sprintf("%s is not available", item.Name),
			)
		}

		// AddItem captures the snapshot; the requested quantity replaces its +1.
		c.AddItem(cart.Item{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Tier:     item.Tier,
			Price:    item.Price,
		})
		added, _ := c.Line(item.ID)
		c.SetQuantity(item.ID, added.Quantity-1+line.Quantity)
	}

	return QuoteFromCart(c), nil
}

// QuoteFromCart renders a cart for API responses.
func QuoteFromCart(c *cart.Cart) domain.CartQuoteResponse {
	lines := c.Lines()
	response := domain.CartQuoteResponse{
		Lines:     make([]domain.CartLineResponse, 0, len(lines)),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
	for _, line := range lines {
		response.Lines = append(response.Lines, domain.CartLineResponse{
			MenuItemID: line.MenuItemID.String(),
			Name:       line.Name,
			Category:   line.Category,
			Tier:       line.Tier,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal(),
		})
	}
	return response
}
