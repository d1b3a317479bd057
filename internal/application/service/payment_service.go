package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"github.com/sevderk/lavash-bakery-supabase/pkg/apperror"
)

// PaymentService handles payment-related operations
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, customerRepo repository.CustomerRepository) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo, customerRepo: customerRepo}
}

// RecordPaymentInput represents the record payment input
type RecordPaymentInput struct {
	CustomerID    uuid.UUID
	Amount        float64
	Note          *string
	PaymentMethod string
	Description   *string
}

// RecordPayment records a payment; the repository credits the customer's
// balance in the same transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "amount must be greater than zero"},
		})
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	method := input.PaymentMethod
	if method == "" {
		method = "Nakit"
	}

	payment := &entity.Payment{
		CustomerID:    input.CustomerID,
		Amount:        input.Amount,
		Note:          input.Note,
		PaymentMethod: method,
		Description:   input.Description,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListPayments returns a customer's payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.paymentRepo.ListByCustomer(ctx, customerID)
}

// DeletePayment removes a payment; the repository reverses the balance credit
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}
	return s.paymentRepo.Delete(ctx, id)
}
