package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/pricing"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"github.com/sevderk/lavash-bakery-supabase/pkg/apperror"
	"github.com/sevderk/lavash-bakery-supabase/pkg/pagination"
)

// OrderService handles order-related operations, including turning the draft
// map into a committed submission batch.
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	drafts       *DraftService

	// submitting guards against concurrent batch submissions; edits through
	// the HTTP surface are rejected while a submission is in flight.
	submitting atomic.Bool
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	drafts *DraftService,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		drafts:       drafts,
	}
}

// BatchReceipt summarizes a fully committed submission
type BatchReceipt struct {
	OrderGroupID  uuid.UUID `json:"order_group_id"`
	CustomerCount int       `json:"customer_count"`
	TotalItems    int       `json:"total_items"`
	TotalAmount   float64   `json:"total_amount"`
}

// SubmitBatch commits every non-empty draft as one order per customer, all
// sharing a freshly generated order group id.
//
// Writes are issued one customer at a time, in name order, and stop at the
// first failure: the failed and remaining customers keep their drafts, the
// committed prefix keeps its rows. Only a fully successful batch clears the
// draft map. There is no compensation for the committed prefix; re-submitting
// after a partial failure will double-commit it, which the caller can guard
// against with an idempotency key.
func (s *OrderService) SubmitBatch(ctx context.Context) (*BatchReceipt, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, apperror.NewConflictError("A batch submission is already in progress")
	}
	defer s.submitting.Store(false)

	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	drafts := s.drafts.Drafts()
	groupID := uuid.New()
	now := time.Now()

	receipt := &BatchReceipt{OrderGroupID: groupID}

	for _, customer := range customers {
		draft, ok := drafts[customer.ID]
		if !ok {
			continue
		}

		subtotal := pricing.Subtotal(draft.Lines)
		if subtotal <= 0 {
			continue
		}

		totalQty := draft.TotalQuantity()
		finalTotal := pricing.Total(subtotal, draft.DiscountAmount)

		order := &entity.Order{
			CustomerID:   customer.ID,
			Quantity:     totalQty,
			UnitPrice:    pricing.BlendedUnitPrice(finalTotal, totalQty),
			TotalPrice:   finalTotal,
			Status:       enum.OrderStatusPending,
			OrderDate:    now,
			OrderGroupID: &groupID,
		}

		var items []entity.OrderItem
		if !draft.IsSimple() {
			for _, line := range draft.ActiveLines() {
				items = append(items, entity.OrderItem{
					ProductID:  line.ProductID,
					Quantity:   line.Quantity,
					UnitPrice:  line.UnitPrice,
					TotalPrice: float64(line.Quantity) * line.UnitPrice,
				})
			}
		}

		if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
			return nil, apperror.NewAppError(502,
				fmt.Sprintf("Order for %s could not be saved: %v", customer.Name, err))
		}

		receipt.CustomerCount++
		receipt.TotalItems += totalQty
		receipt.TotalAmount += finalTotal
	}

	if receipt.CustomerCount == 0 {
		return nil, apperror.NewBadRequestError("No drafts to submit")
	}

	s.drafts.ClearDrafts()
	return receipt, nil
}

// Submitting reports whether a batch submission is in flight
func (s *OrderService) Submitting() bool {
	return s.submitting.Load()
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersInput represents the order list filters
type ListOrdersInput struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) (*pagination.PaginatedResult[entity.Order], error) {
	params := &repository.OrderFilterParams{
		Pagination: input.Pagination,
		CustomerID: input.CustomerID,
		Status:     input.Status,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateStatus marks an order delivered or pending
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if !status.Valid() {
		return apperror.NewBadRequestError("Invalid order status")
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

// UpdateItemsInput represents an order items edit
type UpdateItemsInput struct {
	OrderID uuid.UUID
	Lines   []entity.CartLine
	// DiscountAmount applies a discount to the recomputed total, matching how
	// the order was priced at submission. When nil, the discount is derived
	// from the customer's stored policy instead.
	DiscountAmount *float64
}

// UpdateItems replaces an order's items, recomputing quantity, blended unit
// price and total the same way submission does. The repository applies the
// total delta to the customer's balance.
func (s *OrderService) UpdateItems(ctx context.Context, input *UpdateItemsInput) (*entity.Order, error) {
	draft := entity.DraftOrder{Lines: input.Lines}
	active := draft.ActiveLines()
	if len(active) == 0 {
		return nil, apperror.NewBadRequestError("At least one item with a positive quantity is required")
	}

	existing, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	subtotal := pricing.Subtotal(active)
	var discount float64
	if input.DiscountAmount != nil {
		discount = *input.DiscountAmount
	} else {
		customer, err := s.customerRepo.GetByID(ctx, existing.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			discount = pricing.DiscountFor(subtotal, customer)
		}
	}
	total := pricing.Total(subtotal, discount)
	totalQty := draft.TotalQuantity()

	items := make([]entity.OrderItem, 0, len(active))
	for _, line := range active {
		items = append(items, entity.OrderItem{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: float64(line.Quantity) * line.UnitPrice,
		})
	}

	unitPrice := pricing.BlendedUnitPrice(total, totalQty)
	if err := s.orderRepo.ReplaceItems(ctx, input.OrderID, items, totalQty, unitPrice, total); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, input.OrderID)
}

// DeleteOrder removes an order; the repository reverses its balance debit
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.Delete(ctx, id)
}
