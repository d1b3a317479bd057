package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

func TestSetCartIdempotent(t *testing.T) {
	storage := newMockDraftStorage()
	svc := NewDraftService(storage, 5.0)

	customer := uuid.New()
	lines := []entity.CartLine{
		{ProductID: uuid.New(), ProductName: "Lavaş", Quantity: 3, UnitPrice: 5.00},
	}

	svc.SetCart(customer, lines, 0)
	first, ok := svc.Cart(customer)
	require.True(t, ok)

	svc.SetCart(customer, lines, 0)
	second, ok := svc.Cart(customer)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Len(t, svc.Drafts(), 1)
}

func TestSetCartZeroQuantityRemovesDraft(t *testing.T) {
	storage := newMockDraftStorage()
	svc := NewDraftService(storage, 5.0)

	customer := uuid.New()
	svc.SetCart(customer, []entity.CartLine{{Quantity: 2, UnitPrice: 5}}, 0)
	require.Len(t, svc.Drafts(), 1)

	svc.SetCart(customer, []entity.CartLine{}, 0)
	assert.Empty(t, svc.Drafts())
	assert.Empty(t, storage.Persisted)
}

func TestSetQuantitySimpleVariant(t *testing.T) {
	storage := newMockDraftStorage()
	svc := NewDraftService(storage, 5.0)
	customer := uuid.New()

	// First touch uses the default unit price
	svc.SetQuantity(customer, 4)
	draft, ok := svc.Cart(customer)
	require.True(t, ok)
	require.Len(t, draft.Lines, 1)
	assert.True(t, draft.IsSimple())
	assert.Equal(t, 4, draft.Lines[0].Quantity)
	assert.InDelta(t, 5.0, draft.Lines[0].UnitPrice, 1e-9)

	// Changing the price preserves the quantity
	svc.SetUnitPrice(customer, 7.5)
	draft, _ = svc.Cart(customer)
	assert.Equal(t, 4, draft.Lines[0].Quantity)
	assert.InDelta(t, 7.5, draft.Lines[0].UnitPrice, 1e-9)

	// Changing the quantity preserves the price
	svc.SetQuantity(customer, 6)
	draft, _ = svc.Cart(customer)
	assert.Equal(t, 6, draft.Lines[0].Quantity)
	assert.InDelta(t, 7.5, draft.Lines[0].UnitPrice, 1e-9)

	// Zero quantity removes the draft
	svc.SetQuantity(customer, 0)
	_, ok = svc.Cart(customer)
	assert.False(t, ok)
}

func TestSetUnitPriceWithoutDraftIsNoop(t *testing.T) {
	svc := NewDraftService(newMockDraftStorage(), 5.0)
	customer := uuid.New()

	svc.SetUnitPrice(customer, 9.0)
	_, ok := svc.Cart(customer)
	assert.False(t, ok)
}

func TestClearCartAndClearDrafts(t *testing.T) {
	storage := newMockDraftStorage()
	svc := NewDraftService(storage, 5.0)

	a, b := uuid.New(), uuid.New()
	svc.SetCart(a, []entity.CartLine{{Quantity: 1, UnitPrice: 5}}, 0)
	svc.SetCart(b, []entity.CartLine{{Quantity: 2, UnitPrice: 5}}, 0)

	svc.ClearCart(a)
	assert.Len(t, svc.Drafts(), 1)
	svc.ClearCart(a) // no-op when absent
	assert.Len(t, svc.Drafts(), 1)

	svc.ClearDrafts()
	assert.Empty(t, svc.Drafts())
	assert.Empty(t, storage.Persisted)
}

func TestSummaryExcludesZeroSubtotalDrafts(t *testing.T) {
	svc := NewDraftService(newMockDraftStorage(), 5.0)

	customerA := entity.Customer{ID: uuid.New(), Name: "Ayşe"}
	customerB := entity.Customer{ID: uuid.New(), Name: "Berk"}
	customerC := entity.Customer{ID: uuid.New(), Name: "Cem"}

	svc.SetCart(customerA.ID, []entity.CartLine{{Quantity: 3, UnitPrice: 5.00}}, 0)
	// All-zero lines never even reach the map
	svc.SetCart(customerB.ID, []entity.CartLine{{Quantity: 0, UnitPrice: 10}}, 0)
	svc.SetCart(customerC.ID, []entity.CartLine{{Quantity: 10, UnitPrice: 10}}, 10.0)

	summary := svc.Summary([]entity.Customer{customerA, customerB, customerC})
	assert.Equal(t, 2, summary.CustomerCount)
	assert.Equal(t, 13, summary.TotalItems)
	assert.InDelta(t, 105.00, summary.TotalAmount, 1e-9)
}

func TestDraftsSurviveRestart(t *testing.T) {
	storage := newMockDraftStorage()
	customer := uuid.New()

	first := NewDraftService(storage, 5.0)
	first.SetCart(customer, []entity.CartLine{{ProductName: "Simit", Quantity: 2, UnitPrice: 7.5}}, 0)

	second := NewDraftService(storage, 5.0)
	draft, ok := second.Cart(customer)
	require.True(t, ok)
	assert.Equal(t, 2, draft.TotalQuantity())
}

func TestPersistenceFailureKeepsMemoryAuthoritative(t *testing.T) {
	storage := newMockDraftStorage()
	storage.SaveErr = errors.New("disk full")
	svc := NewDraftService(storage, 5.0)

	customer := uuid.New()
	svc.SetCart(customer, []entity.CartLine{{Quantity: 3, UnitPrice: 5}}, 0)

	draft, ok := svc.Cart(customer)
	require.True(t, ok)
	assert.Equal(t, 3, draft.TotalQuantity())
	assert.Empty(t, storage.Persisted)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	storage := newMockDraftStorage()
	storage.LoadErr = errors.New("corrupt blob")

	svc := NewDraftService(storage, 5.0)
	assert.Empty(t, svc.Drafts())
}

func TestReturnedDraftsDoNotAliasStore(t *testing.T) {
	svc := NewDraftService(newMockDraftStorage(), 5.0)
	customer := uuid.New()
	svc.SetCart(customer, []entity.CartLine{{Quantity: 3, UnitPrice: 5}}, 0)

	// Mutating lines on a returned copy must not reach the store
	drafts := svc.Drafts()
	drafts[customer].Lines[0].Quantity = 999

	cart, ok := svc.Cart(customer)
	require.True(t, ok)
	assert.Equal(t, 3, cart.Lines[0].Quantity)

	cart.Lines[0].Quantity = 999
	again, _ := svc.Cart(customer)
	assert.Equal(t, 3, again.Lines[0].Quantity)

	// The caller's input slice is copied on the way in as well
	input := []entity.CartLine{{Quantity: 2, UnitPrice: 4}}
	svc.SetCart(customer, input, 0)
	input[0].Quantity = 999
	stored, _ := svc.Cart(customer)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
}
