package enum

import "database/sql/driver"

// DiscountType represents a customer's discount policy
type DiscountType string

const (
	DiscountTypeNone       DiscountType = "none"
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Valid reports whether the discount type is one of the known values
func (d DiscountType) Valid() bool {
	switch d {
	case DiscountTypeNone, DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

func (d DiscountType) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *DiscountType) Scan(value interface{}) error {
	if value == nil {
		*d = DiscountTypeNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = DiscountType(v)
	case []byte:
		*d = DiscountType(v)
	}
	return nil
}
