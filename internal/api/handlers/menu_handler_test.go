package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"tmm-backend/domain"
	"tmm-backend/internal/api/presenters"
	"tmm-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMenuService struct {
	mock.Mock
}

func (m *mockMenuService) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItemResponse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.MenuItemResponse), args.Error(1)
}

func (m *mockMenuService) GetMenuItem(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.MenuItemResponse), args.Error(1)
}

func (m *mockMenuService) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (domain.MenuItemResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.MenuItemResponse), args.Error(1)
}

func (m *mockMenuService) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (domain.MenuItemResponse, error) {
	args := m.Called(ctx, id, req)
	return args.Get(0).(domain.MenuItemResponse), args.Error(1)
}

func (m *mockMenuService) DeleteMenuItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMenuService) QuoteCart(ctx context.Context, req domain.QuoteCartRequest) (domain.CartQuoteResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.CartQuoteResponse), args.Error(1)
}

func newMenuApp(svc *mockMenuService) *fiber.App {
	h := NewMenuHandler(svc, utils.NewValidator())
	app := fiber.New()
	app.Get("/menu", h.GetMenuItems)
	app.Get("/menu/:id", h.GetMenuItem)
	app.Post("/menu", h.CreateMenuItem)
	app.Post("/cart/quote", h.QuoteCart)
	return app
}

func TestGetMenuItemsFilters(t *testing.T) {
	svc := new(mockMenuService)
	svc.On("ListMenuItems", mock.Anything, domain.MenuFilter{Category: "infant", AvailableOnly: true}).
		Return([]domain.MenuItemResponse{{Name: "Awusaa Koko (Baby)"}}, nil).Once()
	app := newMenuApp(svc)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/menu?category=infant&available=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/menu?available=maybe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestGetMenuItemNotFound(t *testing.T) {
	svc := new(mockMenuService)
	svc.On("GetMenuItem", mock.Anything, "nope").Return(domain.MenuItemResponse{}, domain.ErrMenuItemNotFound).Once()

	resp, err := newMenuApp(svc).Test(httptest.NewRequest(fiber.MethodGet, "/menu/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	out := decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, domain.KindNotFound, out.Kind)
}

func TestCreateMenuItemValidatesBody(t *testing.T) {
	svc := new(mockMenuService)

	req := httptest.NewRequest(fiber.MethodPost, "/menu", strings.NewReader(`{"name":"Tea","category":"pizza","tier":"vip","price":"7.50"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newMenuApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, "category", out.Field)
	svc.AssertNotCalled(t, "CreateMenuItem", mock.Anything, mock.Anything)
}

func TestQuoteCart(t *testing.T) {
	svc := new(mockMenuService)
	svc.On("QuoteCart", mock.Anything, domain.QuoteCartRequest{Items: []domain.QuoteLineRequest{
		{MenuItemID: "5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c01", Quantity: 2},
	}}).Return(domain.CartQuoteResponse{Total: decimal.RequireFromString("16"), ItemCount: 2}, nil).Once()

	req := httptest.NewRequest(fiber.MethodPost, "/cart/quote", strings.NewReader(`{"items":[{"menu_item_id":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c01","quantity":2}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newMenuApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestQuoteCartRejectsQuantityAboveCap(t *testing.T) {
	svc := new(mockMenuService)

	req := httptest.NewRequest(fiber.MethodPost, "/cart/quote", strings.NewReader(`{"items":[{"menu_item_id":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c01","quantity":1000}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := newMenuApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, "items[0].quantity", out.Field)
	svc.AssertNotCalled(t, "QuoteCart", mock.Anything, mock.Anything)
}
