// Package pricing holds the pure cart arithmetic shared by the draft store,
// the submission batch and the HTTP preview endpoints. Keeping a single set of
// formulas here is what stops the displayed running balance from drifting away
// from what the order repository eventually commits.
package pricing

import (
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
)

// Subtotal sums quantity x unit price over all lines. Zero-quantity lines
// contribute nothing and do not need to be filtered first.
func Subtotal(lines []entity.CartLine) float64 {
	var sum float64
	for _, line := range lines {
		sum += float64(line.Quantity) * line.UnitPrice
	}
	return sum
}

// Discount computes the discount amount for a subtotal under a customer's
// policy. A "none" policy or a non-positive value yields 0. A percentage
// policy yields subtotal x value / 100. A fixed policy is clamped to the
// subtotal so the total can never go negative.
func Discount(subtotal float64, discountType enum.DiscountType, discountValue float64) float64 {
	if discountType == enum.DiscountTypeNone || discountValue <= 0 {
		return 0
	}
	if discountType == enum.DiscountTypePercentage {
		return subtotal * discountValue / 100
	}
	// fixed
	if discountValue > subtotal {
		return subtotal
	}
	return discountValue
}

// DiscountFor is Discount applied to a customer's stored policy
func DiscountFor(subtotal float64, customer *entity.Customer) float64 {
	return Discount(subtotal, customer.DiscountType, customer.DiscountValue)
}

// Total is subtotal minus discount. The discount is clamped to [0, subtotal]:
// a negative discount never inflates the total past the subtotal, and an
// oversized one never drives it below zero.
func Total(subtotal, discount float64) float64 {
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	total := subtotal - discount
	if total < 0 {
		return 0
	}
	return total
}

// BlendedUnitPrice is total price over total quantity, 0 when quantity is 0.
// Derived for reporting only, never an independent source of truth.
func BlendedUnitPrice(totalPrice float64, quantity int) float64 {
	if quantity <= 0 {
		return 0
	}
	return totalPrice / float64(quantity)
}
