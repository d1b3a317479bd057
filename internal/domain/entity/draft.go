package entity

import "github.com/google/uuid"

// CartLine is a single product line in a draft cart. ProductID is uuid.Nil for
// simple-variant drafts that carry only a quantity and a unit price.
type CartLine struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
}

// DraftOrder is the locally staged, uncommitted order for one customer.
// DiscountAmount is precomputed when the cart is saved so the submission batch
// totals exactly match what the caller previewed.
type DraftOrder struct {
	Lines          []CartLine `json:"items"`
	DiscountAmount float64    `json:"discountAmount"`
}

// TotalQuantity sums quantities over all lines
func (d DraftOrder) TotalQuantity() int {
	total := 0
	for _, line := range d.Lines {
		total += line.Quantity
	}
	return total
}

// ActiveLines returns the lines with quantity > 0
func (d DraftOrder) ActiveLines() []CartLine {
	active := make([]CartLine, 0, len(d.Lines))
	for _, line := range d.Lines {
		if line.Quantity > 0 {
			active = append(active, line)
		}
	}
	return active
}

// IsSimple reports whether the draft is a simple-variant draft: a single line
// that is not tied to a product. Such drafts submit without item rows.
func (d DraftOrder) IsSimple() bool {
	return len(d.Lines) == 1 && d.Lines[0].ProductID == uuid.Nil
}
