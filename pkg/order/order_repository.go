package order

import (
	"context"

	"tmm-backend/entities"

	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		ListOrders(ctx context.Context, filter StatusFilter, page, limit int) ([]*entities.Order, int64, error)
		UpdateOrderStatus(ctx context.Context, id string, from, to entities.OrderStatus) (int64, error)
		CountOrdersByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// CreateOrder writes the order and its lines in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return err
		}
		if len(order.OrderItems) == 0 {
			return nil
		}
		for i := range order.OrderItems {
			order.OrderItems[i].OrderID = order.ID
		}
		return tx.Create(&order.OrderItems).Error
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems", preloadItems).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders newest first together with the unpaginated count.
func (r *orderRepository) ListOrders(ctx context.Context, filter StatusFilter, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64

	offset := (page - 1) * limit

	filtered := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entities.Order{})
		if !filter.All() {
			query = query.Where("status = ?", filter.Status())
		}
		return query
	}

	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := filtered().
		Preload("OrderItems", preloadItems).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

// UpdateOrderStatus only applies when the stored status is still from, and
// reports the number of rows changed.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id string, from, to entities.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entities.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) CountOrdersByStatus(ctx context.Context) (map[entities.OrderStatus]int64, error) {
	var rows []struct {
		Status entities.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&entities.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[entities.OrderStatus]int64, len(entities.OrderStatuses))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
