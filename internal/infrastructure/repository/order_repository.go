package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems inserts the order, its items and the balance debit as one
// transaction. This is the balance-maintenance rule the schema used to enforce
// with a trigger: an order of total T raises the customer's balance by T.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if len(items) > 0 {
			for i := range items {
				items[i].OrderID = order.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Model(&entity.Customer{}).
			Where("id = ?", order.CustomerID).
			UpdateColumn("current_balance", gorm.Expr("current_balance + ?", order.TotalPrice)).
			Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date < ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Preload("Items.Product").
		Order("order_date DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceItems swaps the item rows and re-points the parent's totals, applying
// only the total delta to the customer's balance so earlier debits stay intact.
func (r *orderRepository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.OrderItem, quantity int, unitPrice, totalPrice float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		delta := totalPrice - order.TotalPrice

		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
			return err
		}

		if len(items) > 0 {
			for i := range items {
				items[i].OrderID = orderID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
			"quantity":    quantity,
			"unit_price":  unitPrice,
			"total_price": totalPrice,
		}).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Customer{}).
			Where("id = ?", order.CustomerID).
			UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta)).
			Error
	})
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order entity.Order
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&entity.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Order{}, "id = ?", id).Error; err != nil {
			return err
		}

		// Reverse the debit the order applied when it was created
		return tx.Model(&entity.Customer{}).
			Where("id = ?", order.CustomerID).
			UpdateColumn("current_balance", gorm.Expr("current_balance - ?", order.TotalPrice)).
			Error
	})
}
