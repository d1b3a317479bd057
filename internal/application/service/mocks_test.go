package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"github.com/sevderk/lavash-bakery-supabase/pkg/pagination"
)

// mockDraftStorage implements repository.DraftStorage in memory
type mockDraftStorage struct {
	Persisted map[uuid.UUID]entity.DraftOrder
	SaveCalls int
	LoadErr   error
	SaveErr   error
}

func newMockDraftStorage() *mockDraftStorage {
	return &mockDraftStorage{Persisted: map[uuid.UUID]entity.DraftOrder{}}
}

func (m *mockDraftStorage) Load() (map[uuid.UUID]entity.DraftOrder, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make(map[uuid.UUID]entity.DraftOrder, len(m.Persisted))
	for k, v := range m.Persisted {
		out[k] = v
	}
	return out, nil
}

func (m *mockDraftStorage) Save(drafts map[uuid.UUID]entity.DraftOrder) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	out := make(map[uuid.UUID]entity.DraftOrder, len(drafts))
	for k, v := range drafts {
		out[k] = v
	}
	m.Persisted = out
	return nil
}

// mockCustomerRepo implements repository.CustomerRepository over a fixed slice
type mockCustomerRepo struct {
	Customers []entity.Customer
	Err       error
}

func (m *mockCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	m.Customers = append(m.Customers, *customer)
	return m.Err
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	for i := range m.Customers {
		if m.Customers[i].ID == id {
			return &m.Customers[i], nil
		}
	}
	return nil, m.Err
}

func (m *mockCustomerRepo) Update(_ context.Context, _ *entity.Customer) error {
	return m.Err
}

func (m *mockCustomerRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return m.Err
}

func (m *mockCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	return m.Customers, int64(len(m.Customers)), m.Err
}

func (m *mockCustomerRepo) ListAll(_ context.Context) ([]entity.Customer, error) {
	return m.Customers, m.Err
}

// createdOrder captures one CreateWithItems call
type createdOrder struct {
	Order entity.Order
	Items []entity.OrderItem
}

// mockOrderRepo implements repository.OrderRepository, optionally failing on
// the nth CreateWithItems call (1-based)
type mockOrderRepo struct {
	Created   []createdOrder
	FailAt    int
	FailWith  error
	OnCreate  func()
	Orders    map[uuid.UUID]*entity.Order
	StatusSet map[uuid.UUID]enum.OrderStatus
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		Orders:    map[uuid.UUID]*entity.Order{},
		StatusSet: map[uuid.UUID]enum.OrderStatus{},
	}
}

func (m *mockOrderRepo) CreateWithItems(_ context.Context, order *entity.Order, items []entity.OrderItem) error {
	if m.OnCreate != nil {
		m.OnCreate()
	}
	if m.FailAt > 0 && len(m.Created)+1 == m.FailAt {
		return m.FailWith
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.Created = append(m.Created, createdOrder{Order: *order, Items: items})
	m.Orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.Orders[id], nil
}

func (m *mockOrderRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.Orders[id], nil
}

func (m *mockOrderRepo) List(_ context.Context, _ *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	orders := make([]entity.Order, 0, len(m.Orders))
	for _, o := range m.Orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (m *mockOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	for _, o := range m.Orders {
		if o.CustomerID == customerID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	m.StatusSet[id] = status
	return nil
}

func (m *mockOrderRepo) ReplaceItems(_ context.Context, orderID uuid.UUID, items []entity.OrderItem, quantity int, unitPrice, totalPrice float64) error {
	if order, ok := m.Orders[orderID]; ok {
		order.Quantity = quantity
		order.UnitPrice = unitPrice
		order.TotalPrice = totalPrice
		order.Items = items
	}
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.Orders, id)
	return nil
}

// mockPaymentRepo implements repository.PaymentRepository
type mockPaymentRepo struct {
	Payments []entity.Payment
	Err      error
}

func (m *mockPaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	if m.Err != nil {
		return m.Err
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now()
	}
	m.Payments = append(m.Payments, *payment)
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for i := range m.Payments {
		if m.Payments[i].ID == id {
			return &m.Payments[i], nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	for _, p := range m.Payments {
		if p.CustomerID == customerID {
			payments = append(payments, p)
		}
	}
	return payments, m.Err
}

func (m *mockPaymentRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return m.Err
}

// mockProductRepo implements repository.ProductRepository over a slice
type mockProductRepo struct {
	Products []entity.Product
	Err      error
}

func (m *mockProductRepo) Create(_ context.Context, product *entity.Product) error {
	if m.Err != nil {
		return m.Err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.Products = append(m.Products, *product)
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for i := range m.Products {
		if m.Products[i].ID == id {
			return &m.Products[i], nil
		}
	}
	return nil, m.Err
}

func (m *mockProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for i := range m.Products {
		if m.Products[i].Name == name {
			return &m.Products[i], nil
		}
	}
	return nil, m.Err
}

func (m *mockProductRepo) Update(_ context.Context, product *entity.Product) error {
	for i := range m.Products {
		if m.Products[i].ID == product.ID {
			m.Products[i] = *product
		}
	}
	return m.Err
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.Products {
		if m.Products[i].ID == id {
			m.Products = append(m.Products[:i], m.Products[i+1:]...)
			break
		}
	}
	return m.Err
}

func (m *mockProductRepo) List(_ context.Context) ([]entity.Product, error) {
	return m.Products, m.Err
}
