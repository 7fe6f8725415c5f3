package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"tmm-backend/domain"
	"tmm-backend/internal/api/presenters"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) SubmitOrder(ctx context.Context, req domain.SubmitOrderRequest) (domain.SubmitOrderResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.SubmitOrderResponse), args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, status string, page, limit int) ([]domain.OrderResponse, int64, error) {
	args := m.Called(ctx, status, page, limit)
	return args.Get(0).([]domain.OrderResponse), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderService) GetOrder(ctx context.Context, id string) (domain.OrderResponse, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.OrderResponse), args.Error(1)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id string, status string) (domain.OrderResponse, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.OrderResponse), args.Error(1)
}

func (m *mockOrderService) GetOrderStats(ctx context.Context) (domain.OrderStatsResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.OrderStatsResponse), args.Error(1)
}

func newOrderApp(svc *mockOrderService) *fiber.App {
	h := NewOrderHandler(svc, 1024)
	app := fiber.New()
	app.Post("/orders", h.SubmitOrder)
	app.Get("/admin/orders", h.GetOrders)
	app.Get("/admin/orders/:id", h.GetOrder)
	app.Patch("/admin/orders/:id/status", h.UpdateOrderStatus)
	return app
}

const storefrontItems = `[{"menuItemId":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c01","name":"Awusaa Koko (Baby)","category":"infant","menuType":"regular","price":"8.00","quantity":2}]`

func multipartOrder(t *testing.T, items string, proof []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	fields := map[string]string{
		"customerName":    "Ama Mensah",
		"customerPhone":   "+233200000000",
		"deliveryAddress": "12 Ring Road",
		"deliveryDate":    "2026-10-20",
		"notes":           "no sugar",
		"orderItems":      items,
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if proof != nil {
		fw, err := w.CreateFormFile("paymentProof", "receipt.png")
		require.NoError(t, err)
		_, err = fw.Write(proof)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func TestSubmitOrderMultipart(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(req domain.SubmitOrderRequest) bool {
		return req.CustomerName == "Ama Mensah" &&
			req.Notes == "no sugar" &&
			len(req.Items) == 1 &&
			req.Items[0].Tier == "regular" &&
			req.Items[0].Quantity == 2 &&
			req.PaymentProof != nil &&
			req.PaymentProof.Filename == "receipt.png" &&
			string(req.PaymentProof.Data) == "png-bytes"
	})).Return(domain.SubmitOrderResponse{OrderID: "o-1", Message: domain.MessageSuccessSubmitOrder}, nil).Once()

	body, contentType := multipartOrder(t, storefrontItems, []byte("png-bytes"))
	req := httptest.NewRequest(fiber.MethodPost, "/orders", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := newOrderApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	out := decode[presenters.Response](t, resp.Body)
	assert.True(t, out.Status)
	assert.Equal(t, "Order received successfully", out.Message)
	svc.AssertExpectations(t)
}

func TestSubmitOrderRejectsOversizedProof(t *testing.T) {
	svc := new(mockOrderService)
	body, contentType := multipartOrder(t, storefrontItems, bytes.Repeat([]byte{0x89}, 2048))
	req := httptest.NewRequest(fiber.MethodPost, "/orders", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := newOrderApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, domain.KindValidation, out.Kind)
	assert.Equal(t, "payment_proof", out.Field)
	svc.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestSubmitOrderErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"empty cart", domain.ErrEmptyCart, fiber.StatusBadRequest, domain.KindEmptyCart},
		{"validation", domain.NewValidationError("delivery_date", "must be after today"), fiber.StatusBadRequest, domain.KindValidation},
		{"blob", fmt.Errorf("%w: timeout", domain.ErrBlobWrite), fiber.StatusInternalServerError, domain.KindBlobWrite},
		{"persistence", fmt.Errorf("%w: pq: connection refused", domain.ErrPersistence), fiber.StatusInternalServerError, domain.KindPersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderService)
			svc.On("SubmitOrder", mock.Anything, mock.Anything).Return(domain.SubmitOrderResponse{}, tc.err).Once()

			req := httptest.NewRequest(fiber.MethodPost, "/orders", strings.NewReader(`{"customer_name":"Ama","items":[]}`))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := newOrderApp(svc).Test(req)
			require.NoError(t, err)

			assert.Equal(t, tc.code, resp.StatusCode)
			out := decode[presenters.ErrorPayload](t, resp.Body)
			assert.Equal(t, tc.kind, out.Kind)
			assert.Equal(t, domain.MessageFailedSubmitOrder, out.Message)
			assert.NotContains(t, out.Error, "pq:")
		})
	}
}

func TestGetOrdersPagination(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("ListOrders", mock.Anything, "pending", 2, 5).Return([]domain.OrderResponse{{ID: "o-1", Status: "pending"}}, int64(11), nil).Once()

	resp, err := newOrderApp(svc).Test(httptest.NewRequest(fiber.MethodGet, "/admin/orders?status=pending&page=2&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[struct {
		Data struct {
			Orders     []domain.OrderResponse `json:"orders"`
			Pagination struct {
				Total      int64 `json:"total"`
				TotalPages int64 `json:"total_pages"`
			} `json:"pagination"`
		} `json:"data"`
	}](t, resp.Body)
	assert.Len(t, out.Data.Orders, 1)
	assert.EqualValues(t, 11, out.Data.Pagination.Total)
	assert.EqualValues(t, 3, out.Data.Pagination.TotalPages)
	svc.AssertExpectations(t)
}

func TestUpdateOrderStatusConflict(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("UpdateOrderStatus", mock.Anything, "o-1", "pending").
		Return(domain.OrderResponse{}, fmt.Errorf("%w: delivered -> pending", domain.ErrInvalidStatusTransition)).Once()
	svc.On("GetOrder", mock.Anything, "missing").Return(domain.OrderResponse{}, domain.ErrOrderNotFound).Once()

	app := newOrderApp(svc)
	req := httptest.NewRequest(fiber.MethodPatch, "/admin/orders/o-1/status", strings.NewReader(`{"status":"pending"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/admin/orders/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitOrderMapsStorefrontCategories(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(req domain.SubmitOrderRequest) bool {
		return len(req.Items) == 3 &&
			req.Items[0].Category == "infant" &&
			req.Items[1].Category == "general" &&
			req.Items[2].Category == "diabetic"
	})).Return(domain.SubmitOrderResponse{OrderID: "o-1"}, nil).Once()

	items := `[
		{"menuItemId":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c01","name":"Awusaa Koko (Baby)","category":"babies","menuType":"regular","price":"8.00","quantity":1},
		{"menuItemId":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c02","name":"Oat Porridge","category":"diabetesFree","menuType":"regular","price":"10.00","quantity":1},
		{"menuItemId":"5b0c7e0e-8d8e-4c0a-9a53-2f6f1b4a0c03","name":"Herbal Tea","category":"diabetic","menuType":"vip","price":"6.00","quantity":1}
	]`
	body, contentType := multipartOrder(t, items, nil)
	req := httptest.NewRequest(fiber.MethodPost, "/orders", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := newOrderApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestSubmitOrderMalformedInput(t *testing.T) {
	svc := new(mockOrderService)
	app := newOrderApp(svc)

	body, contentType := multipartOrder(t, `[{"name":`, nil)
	req := httptest.NewRequest(fiber.MethodPost, "/orders", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, domain.KindValidation, out.Kind)
	assert.Equal(t, "orderItems", out.Field)

	req = httptest.NewRequest(fiber.MethodPost, "/orders", strings.NewReader(`{"customer_name":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out = decode[presenters.ErrorPayload](t, resp.Body)
	assert.Equal(t, domain.KindValidation, out.Kind)
	assert.Equal(t, "body", out.Field)

	svc.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}
