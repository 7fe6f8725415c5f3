package order

import (
	"context"
	"errors"

	"tmm-backend/entities"
)

// Notifier is told about status transitions made from the back office.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, order *entities.Order, previous entities.OrderStatus) error
}

type nopNotifier struct{}

func (nopNotifier) OrderStatusChanged(context.Context, *entities.Order, entities.OrderStatus) error {
	return nil
}

type multiNotifier []Notifier

// NewMultiNotifier fans out to every non-nil notifier and joins their errors.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	var out multiNotifier
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nopNotifier{}
	}
	return out
}

func (m multiNotifier) OrderStatusChanged(ctx context.Context, order *entities.Order, previous entities.OrderStatus) error {
	var errs []error
	for _, n := range m {
		if err := n.OrderStatusChanged(ctx, order, previous); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
