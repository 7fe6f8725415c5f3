package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tmm-backend/domain"
	"tmm-backend/entities"
	"tmm-backend/internal/api/presenters"
	"tmm-backend/pkg/order"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type (
	OrderHandler interface {
		SubmitOrder(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
		GetOrderStats(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService  order.OrderService
		maxProofBytes int64
	}

	// formLine is a cart line as posted by the storefront form.
	formLine struct {
		MenuItemID string          `json:"menuItemId"`
		Name       string          `json:"name"`
		Category   string          `json:"category"`
		Tier       string          `json:"tier"`
		MenuType   string          `json:"menuType"`
		Price      decimal.Decimal `json:"price"`
		Quantity   int             `json:"quantity"`
	}
)

// storefrontCategories maps the storefront's category names onto catalog ones.
var storefrontCategories = map[string]string{
	"babies":        entities.CategoryInfant,
	"diabetesFree":  entities.CategoryGeneral,
	"diabetes-free": entities.CategoryGeneral,
}

// NewOrderHandler reads at most maxProofBytes of an uploaded proof; zero means
// no cap beyond the server body limit.
func NewOrderHandler(orderService order.OrderService, maxProofBytes int64) OrderHandler {
	return &orderHandler{
		orderService:  orderService,
		maxProofBytes: maxProofBytes,
	}
}

func (h *orderHandler) SubmitOrder(c *fiber.Ctx) error {
	req, err := h.parseSubmission(c)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.orderService.SubmitOrder(c.UserContext(), req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSubmitOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitOrder)
}

// parseSubmission accepts the storefront multipart form or a JSON body.
// Malformed client input comes back as a domain.ValidationError.
func (h *orderHandler) parseSubmission(c *fiber.Ctx) (domain.SubmitOrderRequest, error) {
	var req domain.SubmitOrderRequest

	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := c.BodyParser(&req); err != nil {
			return req, domain.NewValidationError("body", "must be a valid JSON order")
		}
		return req, nil
	}

	req = domain.SubmitOrderRequest{
		CustomerName:    c.FormValue("customerName"),
		CustomerPhone:   c.FormValue("customerPhone"),
		CustomerEmail:   c.FormValue("customerEmail"),
		DeliveryAddress: c.FormValue("deliveryAddress"),
		DeliveryDate:    c.FormValue("deliveryDate"),
		Notes:           c.FormValue("notes"),
	}

	if raw := strings.TrimSpace(c.FormValue("orderItems")); raw != "" {
		var lines []formLine
		if err := json.Unmarshal([]byte(raw), &lines); err != nil {
			return req, domain.NewValidationError("orderItems", "must be a JSON array of cart lines")
		}
		for _, line := range lines {
			tier := line.Tier
			if tier == "" {
				tier = line.MenuType
			}
			category := line.Category
			if mapped, ok := storefrontCategories[category]; ok {
				category = mapped
			}
			req.Items = append(req.Items, domain.CartLineRequest{
				MenuItemID: line.MenuItemID,
				Name:       line.Name,
				Category:   category,
				Tier:       tier,
				Price:      line.Price,
				Quantity:   line.Quantity,
			})
		}
	}

	fh, err := c.FormFile("paymentProof")
	if err != nil {
		// no file part
		return req, nil
	}
	if h.maxProofBytes > 0 && fh.Size > h.maxProofBytes {
		return req, domain.NewValidationError("payment_proof", fmt.Sprintf("must not exceed %d bytes", h.maxProofBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return req, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return req, err
	}
	if len(data) > 0 {
		req.PaymentProof = &domain.ProofFile{Filename: fh.Filename, Data: data}
	}
	return req, nil
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.orderService.ListOrders(c.UserContext(), status, page, limit)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	res, err := h.orderService.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	req := new(domain.UpdateOrderStatusRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.orderService.UpdateOrderStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateOrderStatus, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrderStatus)
}

func (h *orderHandler) GetOrderStats(c *fiber.Ctx) error {
	stats, err := h.orderService.GetOrderStats(c.UserContext())
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrderStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetOrderStats)
}
