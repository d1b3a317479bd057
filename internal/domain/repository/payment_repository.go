package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations.
// Create credits the customer's current_balance in the same transaction.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	// ListByCustomer returns a customer's payments, newest first
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
	// Delete removes the payment and debits the customer's balance back
	Delete(ctx context.Context, id uuid.UUID) error
}
