package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a bakery customer with a discount policy and a running balance.
// CurrentBalance is owned by the order/payment repositories: orders debit it, payments
// credit it. Nothing else writes the column.
type Customer struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	Phone          *string           `gorm:"size:50" json:"phone,omitempty"`
	CurrentBalance float64           `gorm:"not null;default:0" json:"current_balance"`
	DiscountType   enum.DiscountType `gorm:"size:20;not null;default:none" json:"discount_type"`
	DiscountValue  float64           `gorm:"not null;default:0" json:"discount_value"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Orders   []Order   `gorm:"foreignKey:CustomerID" json:"-"`
	Payments []Payment `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// HasDebt reports whether the customer owes money
func (c *Customer) HasDebt() bool {
	return c.CurrentBalance > 0
}
