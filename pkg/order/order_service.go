package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tmm-backend/domain"
	"tmm-backend/entities"
	"tmm-backend/internal/utils"
	"tmm-backend/internal/utils/storage"
	"tmm-backend/pkg/cart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const proofDir = "payment-proofs"

// SubmissionPolicy decides how strictly payment proofs are handled.
type SubmissionPolicy struct {
	// RequireProof rejects submissions that carry no proof file.
	RequireProof bool
	// FailOnBlobError fails the submission when the proof cannot be stored.
	// When false the order is created without a proof.
	FailOnBlobError bool
	// MaxProofBytes caps the proof size; zero disables the check.
	MaxProofBytes int64
}

type (
	OrderService interface {
		SubmitOrder(ctx context.Context, req domain.SubmitOrderRequest) (domain.SubmitOrderResponse, error)
		ListOrders(ctx context.Context, status string, page, limit int) ([]domain.OrderResponse, int64, error)
		GetOrder(ctx context.Context, id string) (domain.OrderResponse, error)
		UpdateOrderStatus(ctx context.Context, id string, status string) (domain.OrderResponse, error)
		GetOrderStats(ctx context.Context) (domain.OrderStatsResponse, error)
	}

	orderService struct {
		orderRepository OrderRepository
		blobStore       storage.BlobStore
		notifier        Notifier
		validator       *validator.Validate
		policy          SubmissionPolicy
		now             func() time.Time
		location        *time.Location
	}

	Option func(*orderService)
)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *orderService) { s.now = now }
}

// WithLocation sets the calendar used for the delivery date check.
func WithLocation(loc *time.Location) Option {
	return func(s *orderService) { s.location = loc }
}

func WithNotifier(n Notifier) Option {
	return func(s *orderService) { s.notifier = n }
}

func NewOrderService(orderRepository OrderRepository, blobStore storage.BlobStore, validate *validator.Validate, policy SubmissionPolicy, opts ...Option) OrderService {
	s := &orderService{
		orderRepository: orderRepository,
		blobStore:       blobStore,
		notifier:        nopNotifier{},
		validator:       validate,
		policy:          policy,
		now:             time.Now,
		location:        time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *orderService) SubmitOrder(ctx context.Context, req domain.SubmitOrderRequest) (domain.SubmitOrderResponse, error) {
	if len(req.Items) == 0 {
		return domain.SubmitOrderResponse{}, domain.ErrEmptyCart
	}

	now := s.now()
	deliveryDate, lines, err := s.validateSubmission(&req, now)
	if err != nil {
		return domain.SubmitOrderResponse{}, err
	}

	order := &entities.Order{
		ID:              uuid.New(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    deliveryDate,
		Notes:           req.Notes,
		TotalAmount:     lines.Total(),
		Status:          entities.StatusPending,
	}
	for i, line := range lines.Lines() {
		order.OrderItems = append(order.OrderItems, entities.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			Category:   line.Category,
			Tier:       line.Tier,
			Price:      line.Price,
			Quantity:   line.Quantity,
			Position:   i,
		})
	}

	if req.PaymentProof != nil {
		link, err := s.storeProof(ctx, order.ID, req.PaymentProof, now)
		if err != nil {
			log.Errorw("payment proof upload failed",
				"order_id", order.ID.String(),
				"filename", req.PaymentProof.Filename,
				"fail_order", s.policy.FailOnBlobError,
				"error", err,
			)
			if s.policy.FailOnBlobError {
				return domain.SubmitOrderResponse{}, fmt.Errorf("%w: %v", domain.ErrBlobWrite, err)
			}
		}
		order.PaymentProof = link
	}

	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		log.Errorw("order persistence failed", "order_id", order.ID.String(), "error", err)
		if order.PaymentProof != "" {
			// nothing else cleans up orphaned proofs
			if delErr := s.blobStore.Delete(ctx, order.PaymentProof); delErr != nil {
				log.Warnw("orphaned payment proof left behind", "link", order.PaymentProof, "error", delErr)
			}
		}
		return domain.SubmitOrderResponse{}, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	log.Infow("order submitted",
		"order_id", order.ID.String(),
		"lines", len(order.OrderItems),
		"total", order.TotalAmount.StringFixed(2),
		"payment_proof", order.PaymentProof != "",
	)

	return domain.SubmitOrderResponse{
		OrderID:         order.ID.String(),
		Message:         domain.MessageSuccessSubmitOrder,
		PaymentProofSet: order.PaymentProof != "",
	}, nil
}

// validateSubmission runs every check that must pass before any side effect.
func (s *orderService) validateSubmission(req *domain.SubmitOrderRequest, now time.Time) (time.Time, *cart.Cart, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	req.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
	req.DeliveryDate = strings.TrimSpace(req.DeliveryDate)
	req.Notes = strings.TrimSpace(req.Notes)

	if err := s.validator.Struct(req); err != nil {
		return time.Time{}, nil, utils.ToValidationError(err)
	}

	deliveryDate, err := s.parseDeliveryDate(req.DeliveryDate, now)
	if err != nil {
		return time.Time{}, nil, err
	}

	lines := cart.New()
	for i, item := range req.Items {
		if item.Price.IsNegative() {
			return time.Time{}, nil, domain.NewValidationError(fmt.Sprintf("items[%d].price", i), "must not be negative")
		}
		// prices are stored with two decimals; the total must be computed from those
		if !item.Price.Equal(item.Price.Round(2)) {
			return time.Time{}, nil, domain.NewValidationError(fmt.Sprintf("items[%d].price", i), "must have at most 2 decimal places")
		}
		lines.Merge(cart.Line{
			MenuItemID: uuid.MustParse(item.MenuItemID),
			Name:       item.Name,
			Category:   item.Category,
			Tier:       item.Tier,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}
	for _, line := range lines.Lines() {
		if line.Quantity > domain.MaxLineQuantity {
			return time.Time{}, nil, domain.NewValidationError("items", fmt.Sprintf("quantity of %s must not exceed %d", line.Name, domain.MaxLineQuantity))
		}
		if line.Price.GreaterThan(domain.MaxOrderAmount) {
			return time.Time{}, nil, domain.NewValidationError("items", fmt.Sprintf("price of %s is too large", line.Name))
		}
	}
	if lines.Total().GreaterThan(domain.MaxOrderAmount) {
		return time.Time{}, nil, domain.NewValidationError("items", "order total is too large")
	}

	if err := s.checkProof(req.PaymentProof); err != nil {
		return time.Time{}, nil, err
	}

	return deliveryDate, lines, nil
}

// parseDeliveryDate accepts only calendar dates strictly after today in the
// configured location. The result is that date at UTC midnight.
func (s *orderService) parseDeliveryDate(value string, now time.Time) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateLayout, value, s.location)
	if err != nil {
		return time.Time{}, domain.NewValidationError("delivery_date", "must be a date formatted as YYYY-MM-DD")
	}

	local := now.In(s.location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	if !date.After(today) {
		return time.Time{}, domain.NewValidationError("delivery_date", "must be after today")
	}

	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *orderService) checkProof(proof *domain.ProofFile) error {
	if proof == nil || len(proof.Data) == 0 {
		if s.policy.RequireProof {
			return domain.NewValidationError("payment_proof", "is required")
		}
		return nil
	}
	if s.policy.MaxProofBytes > 0 && int64(len(proof.Data)) > s.policy.MaxProofBytes {
		return domain.NewValidationError("payment_proof", fmt.Sprintf("must not exceed %d bytes", s.policy.MaxProofBytes))
	}
	if _, err := storage.DetectContentType(proof.Data, storage.AllowProof...); err != nil {
		return domain.NewValidationError("payment_proof", "must be an image or a PDF")
	}
	return nil
}

// storeProof names the blob after the order so concurrent uploads of the same
// file name never share a key.
func (s *orderService) storeProof(ctx context.Context, orderID uuid.UUID, proof *domain.ProofFile, now time.Time) (string, error) {
	if len(proof.Data) == 0 {
		return "", nil
	}
	if s.blobStore == nil {
		return "", errors.New("no blob store configured")
	}
	name := fmt.Sprintf("payment_%d_%s_%s", now.UnixMilli(), orderID, storage.SafeName(proof.Filename))
	return s.blobStore.Store(ctx, proof.Data, name, proofDir)
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	items := make([]domain.OrderItemResponse, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, domain.OrderItemResponse{
			ID:         item.ID.String(),
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			Category:   item.Category,
			Tier:       item.Tier,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal(),
		})
	}

	return domain.OrderResponse{
		ID:              order.ID.String(),
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerEmail:   order.CustomerEmail,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryDate:    order.DeliveryDate.UTC().Format(domain.DateLayout),
		Notes:           order.Notes,
		PaymentProof:    order.PaymentProof,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func (s *orderService) ListOrders(ctx context.Context, status string, page, limit int) ([]domain.OrderResponse, int64, error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}

	orders, count, err := s.orderRepository.ListOrders(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	return response, count, nil
}

func (s *orderService) getOrder(ctx context.Context, id string) (*entities.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (domain.OrderResponse, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status string) (domain.OrderResponse, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	order, err := s.getOrder(ctx, id)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	previous := order.Status
	if !CanTransition(previous, next) {
		return domain.OrderResponse{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, previous, next)
	}

	affected, err := s.orderRepository.UpdateOrderStatus(ctx, id, previous, next)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if affected == 0 {
		// another admin moved the order first
		return domain.OrderResponse{}, fmt.Errorf("%w: %s is no longer %s", domain.ErrInvalidStatusTransition, id, previous)
	}
	order.Status = next
	order.UpdatedAt = s.now()

	if err := s.notifier.OrderStatusChanged(ctx, order, previous); err != nil {
		log.Warnw("order status notification failed", "order_id", id, "status", string(next), "error", err)
	}

	return toOrderResponse(order), nil
}

func (s *orderService) GetOrderStats(ctx context.Context) (domain.OrderStatsResponse, error) {
	counts, err := s.orderRepository.CountOrdersByStatus(ctx)
	if err != nil {
		return domain.OrderStatsResponse{}, err
	}

	stats := domain.OrderStatsResponse{
		Pending:   counts[entities.StatusPending],
		Confirmed: counts[entities.StatusConfirmed],
		Preparing: counts[entities.StatusPreparing],
		Delivered: counts[entities.StatusDelivered],
		Cancelled: counts[entities.StatusCancelled],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
