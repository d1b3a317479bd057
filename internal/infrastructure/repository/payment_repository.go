package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts the payment and credits the customer's balance in one
// transaction: a payment of amount A lowers the balance by A.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Customer{}).
			Where("id = ?", payment.CustomerID).
			UpdateColumn("current_balance", gorm.Expr("current_balance - ?", payment.Amount)).
			Error
	})
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment entity.Payment
		if err := tx.First(&payment, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Payment{}, "id = ?", id).Error; err != nil {
			return err
		}
		// Reverse the credit
		return tx.Model(&entity.Customer{}).
			Where("id = ?", payment.CustomerID).
			UpdateColumn("current_balance", gorm.Expr("current_balance + ?", payment.Amount)).
			Error
	})
}
