package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents one customer's committed order. UnitPrice is the blended price
// (TotalPrice / Quantity), a reporting convenience only. Orders submitted together
// share an OrderGroupID.
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Quantity     int              `gorm:"not null;default:0" json:"quantity"`
	UnitPrice    float64          `gorm:"not null;default:0" json:"unit_price"`
	TotalPrice   float64          `gorm:"not null;default:0" json:"total_price"`
	Status       enum.OrderStatus `gorm:"size:20;not null;default:pending" json:"status"`
	OrderDate    time.Time        `gorm:"not null;index" json:"order_date"`
	OrderGroupID *uuid.UUID       `gorm:"type:uuid;index" json:"order_group_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// Relationships
	Customer Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a single product line of a committed order.
// TotalPrice is always Quantity x UnitPrice.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity"`
	UnitPrice  float64   `gorm:"not null;default:0" json:"unit_price"`
	TotalPrice float64   `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
