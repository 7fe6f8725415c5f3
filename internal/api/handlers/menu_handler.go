package handlers

import (
	"strconv"

	"tmm-backend/domain"
	"tmm-backend/internal/api/presenters"
	"tmm-backend/internal/utils"
	"tmm-backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetMenuItems(c *fiber.Ctx) error
		GetMenuItem(c *fiber.Ctx) error
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		QuoteCart(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	filter := domain.MenuFilter{
		Category: c.Query("category"),
		Tier:     c.Query("tier"),
	}
	if available := c.Query("available"); available != "" {
		only, err := strconv.ParseBool(available)
		if err != nil {
			return presenters.Fail(c, domain.MessageFailedGetMenuItems, domain.NewValidationError("available", "must be true or false"))
		}
		filter.AvailableOnly = only
	}

	items, err := h.menuService.ListMenuItems(c.UserContext(), filter)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetMenuItems, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) GetMenuItem(c *fiber.Ctx) error {
	item, err := h.menuService.GetMenuItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetMenuItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetMenuItem)
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	req := new(domain.CreateMenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateMenuItem, utils.ToValidationError(err))
	}

	res, err := h.menuService.CreateMenuItem(c.UserContext(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	req := new(domain.UpdateMenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateMenuItem, utils.ToValidationError(err))
	}

	res, err := h.menuService.UpdateMenuItem(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	if err := h.menuService.DeleteMenuItem(c.UserContext(), c.Params("id")); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteMenuItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

// QuoteCart prices a cart against the live catalog without storing anything.
func (h *menuHandler) QuoteCart(c *fiber.Ctx) error {
	req := new(domain.QuoteCartRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.Fail(c, domain.MessageFailedQuoteCart, utils.ToValidationError(err))
	}

	res, err := h.menuService.QuoteCart(c.UserContext(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedQuoteCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessQuoteCart)
}
