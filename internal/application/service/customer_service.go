package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"github.com/sevderk/lavash-bakery-supabase/pkg/apperror"
	"github.com/sevderk/lavash-bakery-supabase/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name          string
	Phone         *string
	DiscountType  enum.DiscountType
	DiscountValue float64
}

func validateDiscountPolicy(discountType enum.DiscountType, discountValue float64) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if !discountType.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "discount_type", Message: "must be none, percentage or fixed",
		})
		return fieldErrors
	}
	switch discountType {
	case enum.DiscountTypePercentage:
		if discountValue < 0 || discountValue > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "discount_value", Message: "percentage must be between 0 and 100",
			})
		}
	case enum.DiscountTypeFixed:
		if discountValue < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: "discount_value", Message: "fixed amount must not be negative",
			})
		}
	}
	return fieldErrors
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	discountType := input.DiscountType
	if discountType == "" {
		discountType = enum.DiscountTypeNone
	}
	if fieldErrors := validateDiscountPolicy(discountType, input.DiscountValue); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	discountValue := input.DiscountValue
	if discountType == enum.DiscountTypeNone {
		discountValue = 0
	}

	customer := &entity.Customer{
		Name:          name,
		Phone:         input.Phone,
		DiscountType:  discountType,
		DiscountValue: discountValue,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListAllCustomers returns every customer ordered by name
func (s *CustomerService) ListAllCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.customerRepo.ListAll(ctx)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID            uuid.UUID
	Name          *string
	Phone         *string
	DiscountType  *enum.DiscountType
	DiscountValue *float64
}

// UpdateCustomer updates a customer's profile and discount policy
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "name", Message: "name is required"},
			})
		}
		customer.Name = name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.DiscountType != nil {
		customer.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		customer.DiscountValue = *input.DiscountValue
	}
	if customer.DiscountType == enum.DiscountTypeNone {
		customer.DiscountValue = 0
	}
	if fieldErrors := validateDiscountPolicy(customer.DiscountType, customer.DiscountValue); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer. A customer with committed orders fails
// the foreign key check; the backend error is surfaced verbatim.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// StatementEntry is one row of a customer's merged order/payment timeline
type StatementEntry struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"` // "order" or "payment"
	Date           time.Time `json:"date"`
	Amount         float64   `json:"amount"`
	Quantity       int       `json:"quantity,omitempty"`
	ProductSummary string    `json:"product_summary,omitempty"`
	Note           *string   `json:"note,omitempty"`
	PaymentMethod  string    `json:"payment_method,omitempty"`
}

// Statement combines a customer's orders (debits) and payments (credits) into
// one timeline, newest first.
func (s *CustomerService) Statement(ctx context.Context, customerID uuid.UUID) ([]StatementEntry, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	entries := make([]StatementEntry, 0, len(orders)+len(payments))
	for _, order := range orders {
		entries = append(entries, StatementEntry{
			ID:             order.ID,
			Type:           "order",
			Date:           order.OrderDate,
			Amount:         order.TotalPrice,
			Quantity:       order.Quantity,
			ProductSummary: productSummary(&order),
		})
	}
	for _, payment := range payments {
		method := payment.PaymentMethod
		if method == "" {
			method = "Nakit"
		}
		entries = append(entries, StatementEntry{
			ID:            payment.ID,
			Type:          "payment",
			Date:          payment.PaymentDate,
			Amount:        payment.Amount,
			Note:          payment.Note,
			PaymentMethod: method,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}
