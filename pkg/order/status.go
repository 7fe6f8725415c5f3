package order

import (
	"fmt"
	"strings"

	"tmm-backend/domain"
	"tmm-backend/entities"
)

var transitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.StatusPending:   {entities.StatusConfirmed, entities.StatusCancelled},
	entities.StatusConfirmed: {entities.StatusPreparing, entities.StatusCancelled},
	entities.StatusPreparing: {entities.StatusDelivered, entities.StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
// Delivered and cancelled are terminal.
func CanTransition(from, to entities.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (entities.OrderStatus, error) {
	status := entities.OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	return status, nil
}

// StatusFilter selects orders by status. The zero value selects all orders.
type StatusFilter struct {
	status entities.OrderStatus
}

var AllStatuses = StatusFilter{}

func FilterByStatus(status entities.OrderStatus) StatusFilter {
	return StatusFilter{status: status}
}

// ParseStatusFilter accepts "all", an empty string, or any order status.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s = strings.TrimSpace(s); s == "" || strings.EqualFold(s, "all") {
		return AllStatuses, nil
	}
	status, err := ParseStatus(s)
	if err != nil {
		return StatusFilter{}, err
	}
	return FilterByStatus(status), nil
}

func (f StatusFilter) All() bool {
	return f.status == ""
}

func (f StatusFilter) Status() entities.OrderStatus {
	return f.status
}

func (f StatusFilter) String() string {
	if f.All() {
		return "all"
	}
	return string(f.status)
}

func (f StatusFilter) Matches(order *entities.Order) bool {
	return f.All() || order.Status == f.status
}

// Apply returns the matching orders in their original order.
func (f StatusFilter) Apply(orders []*entities.Order) []*entities.Order {
	out := make([]*entities.Order, 0, len(orders))
	for _, order := range orders {
		if f.Matches(order) {
			out = append(out, order)
		}
	}
	return out
}
