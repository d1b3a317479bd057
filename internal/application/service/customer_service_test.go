package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
)

func newCustomerService() (*CustomerService, *mockCustomerRepo, *mockOrderRepo, *mockPaymentRepo) {
	customerRepo := &mockCustomerRepo{}
	orderRepo := newMockOrderRepo()
	paymentRepo := &mockPaymentRepo{}
	return NewCustomerService(customerRepo, orderRepo, paymentRepo), customerRepo, orderRepo, paymentRepo
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _, _, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "   "})
	assert.Error(t, err, "empty name rejected")

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name: "Ayşe", DiscountType: enum.DiscountTypePercentage, DiscountValue: 150,
	})
	assert.Error(t, err, "percentage over 100 rejected")

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name: "Ayşe", DiscountType: enum.DiscountTypeFixed, DiscountValue: -5,
	})
	assert.Error(t, err, "negative fixed discount rejected")

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name: "Ayşe", DiscountType: enum.DiscountTypeNone, DiscountValue: 42,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, customer.DiscountValue, 1e-9, "none policy zeroes the value")
}

func TestCreateCustomerDefaultsDiscountTypeToNone(t *testing.T) {
	svc, _, _, _ := newCustomerService()

	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{Name: "Berk"})
	require.NoError(t, err)
	assert.Equal(t, enum.DiscountTypeNone, customer.DiscountType)
}

func TestStatementMergesOrdersAndPaymentsNewestFirst(t *testing.T) {
	svc, customerRepo, orderRepo, paymentRepo := newCustomerService()
	ctx := context.Background()

	customerID := uuid.New()
	customerRepo.Customers = []entity.Customer{{ID: customerID, Name: "Cem"}}

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, orderRepo.CreateWithItems(ctx, &entity.Order{
		CustomerID: customerID, Quantity: 3, TotalPrice: 15, OrderDate: base,
	}, nil))
	require.NoError(t, paymentRepo.Create(ctx, &entity.Payment{
		CustomerID: customerID, Amount: 10, PaymentDate: base.Add(2 * time.Hour), PaymentMethod: "Nakit",
	}))
	require.NoError(t, orderRepo.CreateWithItems(ctx, &entity.Order{
		CustomerID: customerID, Quantity: 1, TotalPrice: 5, OrderDate: base.Add(4 * time.Hour),
	}, nil))

	entries, err := svc.Statement(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "order", entries[0].Type)
	assert.InDelta(t, 5.0, entries[0].Amount, 1e-9)
	assert.Equal(t, "payment", entries[1].Type)
	assert.Equal(t, "order", entries[2].Type)
	assert.Equal(t, "3 Adet", entries[2].ProductSummary)
}

func TestRecordPaymentValidation(t *testing.T) {
	customerRepo := &mockCustomerRepo{}
	paymentRepo := &mockPaymentRepo{}
	svc := NewPaymentService(paymentRepo, customerRepo)
	ctx := context.Background()

	customerID := uuid.New()
	customerRepo.Customers = []entity.Customer{{ID: customerID, Name: "Ayşe"}}

	_, err := svc.RecordPayment(ctx, &RecordPaymentInput{CustomerID: customerID, Amount: 0})
	assert.Error(t, err, "zero amount rejected")

	_, err = svc.RecordPayment(ctx, &RecordPaymentInput{CustomerID: uuid.New(), Amount: 10})
	assert.Error(t, err, "unknown customer rejected")

	payment, err := svc.RecordPayment(ctx, &RecordPaymentInput{CustomerID: customerID, Amount: 25})
	require.NoError(t, err)
	assert.Equal(t, "Nakit", payment.PaymentMethod, "method defaults to cash")
	assert.Len(t, paymentRepo.Payments, 1)
}
