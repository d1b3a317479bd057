package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/pricing"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
)

// DraftService is the draft cart store: exactly one pending, uncommitted draft
// per customer, held in memory and written through to local storage on every
// mutation. The in-memory map is authoritative for the session; persistence
// failures are logged and never surfaced.
type DraftService struct {
	mu               sync.Mutex
	drafts           map[uuid.UUID]entity.DraftOrder
	storage          repository.DraftStorage
	defaultUnitPrice float64
}

// NewDraftService creates the draft store, resuming any drafts the storage
// adapter persisted in a previous session.
func NewDraftService(storage repository.DraftStorage, defaultUnitPrice float64) *DraftService {
	drafts, err := storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load persisted drafts, starting empty")
		drafts = map[uuid.UUID]entity.DraftOrder{}
	}
	return &DraftService{
		drafts:           drafts,
		storage:          storage,
		defaultUnitPrice: defaultUnitPrice,
	}
}

// SetCart replaces the customer's entire draft. A cart whose total quantity is
// zero removes the draft instead of storing it. Idempotent overwrite.
func (s *DraftService) SetCart(customerID uuid.UUID, lines []entity.CartLine, discountAmount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := entity.DraftOrder{
		Lines:          append([]entity.CartLine(nil), lines...),
		DiscountAmount: discountAmount,
	}
	if draft.TotalQuantity() <= 0 {
		delete(s.drafts, customerID)
	} else {
		s.drafts[customerID] = draft
	}
	s.persist()
}

// SetQuantity sets the quantity of a simple-variant draft, preserving the unit
// price already on the draft or falling back to the configured default on
// first touch. Negative quantities are clamped to zero; a zero quantity
// removes the draft.
func (s *DraftService) SetQuantity(customerID uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		delete(s.drafts, customerID)
		s.persist()
		return
	}

	unitPrice := s.defaultUnitPrice
	if existing, ok := s.drafts[customerID]; ok && len(existing.Lines) > 0 {
		unitPrice = existing.Lines[0].UnitPrice
	}

	s.drafts[customerID] = entity.DraftOrder{
		Lines: []entity.CartLine{{ProductID: uuid.Nil, Quantity: quantity, UnitPrice: unitPrice}},
	}
	s.persist()
}

// SetUnitPrice sets the unit price of an existing simple-variant draft,
// preserving its quantity. Negative prices are clamped to zero. Without an
// existing draft there is no quantity to price, so this is a no-op.
func (s *DraftService) SetUnitPrice(customerID uuid.UUID, unitPrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.drafts[customerID]
	if !ok {
		return
	}
	if unitPrice < 0 {
		unitPrice = 0
	}

	s.drafts[customerID] = entity.DraftOrder{
		Lines: []entity.CartLine{{ProductID: uuid.Nil, Quantity: existing.TotalQuantity(), UnitPrice: unitPrice}},
	}
	s.persist()
}

// ClearCart removes one customer's draft. No-op if absent.
func (s *DraftService) ClearCart(customerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, customerID)
	s.persist()
}

// ClearDrafts wipes all drafts. Called once, after a fully successful batch
// submission.
func (s *DraftService) ClearDrafts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts = map[uuid.UUID]entity.DraftOrder{}
	s.persist()
}

// Cart returns one customer's draft
func (s *DraftService) Cart(customerID uuid.UUID) (entity.DraftOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts[customerID]
	draft.Lines = append([]entity.CartLine(nil), draft.Lines...)
	return draft, ok
}

// Drafts returns a copy of the draft map. Line slices are copied too, so
// callers can never mutate the store through a returned draft.
func (s *DraftService) Drafts() map[uuid.UUID]entity.DraftOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uuid.UUID]entity.DraftOrder, len(s.drafts))
	for customerID, draft := range s.drafts {
		draft.Lines = append([]entity.CartLine(nil), draft.Lines...)
		out[customerID] = draft
	}
	return out
}

// DraftSummary aggregates the pending drafts for display before submission
type DraftSummary struct {
	TotalItems    int     `json:"total_items"`
	TotalAmount   float64 `json:"total_amount"`
	CustomerCount int     `json:"customer_count"`
}

// Summary totals the drafts over the given customers. Customers whose draft
// subtotal is zero or negative are not counted; the per-customer total uses
// the draft's precomputed discount, exactly as submission will.
func (s *DraftService) Summary(customers []entity.Customer) DraftSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary DraftSummary
	for _, customer := range customers {
		draft, ok := s.drafts[customer.ID]
		if !ok {
			continue
		}
		subtotal := pricing.Subtotal(draft.Lines)
		if subtotal <= 0 {
			continue
		}
		summary.CustomerCount++
		summary.TotalItems += draft.TotalQuantity()
		summary.TotalAmount += pricing.Total(subtotal, draft.DiscountAmount)
	}
	return summary
}

// persist writes the map through to storage. Caller must hold s.mu.
func (s *DraftService) persist() {
	if err := s.storage.Save(s.drafts); err != nil {
		log.Warn().Err(err).Msg("Failed to persist drafts, keeping in-memory state")
	}
}
