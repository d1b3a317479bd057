package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"github.com/sevderk/lavash-bakery-supabase/pkg/pagination"
)

// OrderRepository defines the interface for order data operations.
//
// Every write that changes an order's total also adjusts the owning customer's
// current_balance inside the same transaction; callers never touch the balance.
type OrderRepository interface {
	// CreateWithItems inserts the parent order and its item rows and debits the
	// customer's balance by the order total, all in one transaction.
	CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithItems returns the order with its items and their products preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// ListByCustomer returns all of a customer's orders, newest first, with
	// items and products preloaded.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	// ReplaceItems swaps the order's item rows for the given set, updates the
	// parent's quantity/unit_price/total_price and applies the total delta to
	// the customer's balance.
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []entity.OrderItem, quantity int, unitPrice, totalPrice float64) error
	// Delete removes the order and its items and credits the customer's balance
	// back by the order total.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
