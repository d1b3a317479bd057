package repository

import (
	"context"
	"time"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
)

// ReportRepository defines read-side aggregate queries for reports and the dashboard
type ReportRepository interface {
	// OrdersBetween returns orders with order_date in [start, end), with
	// customer and item products preloaded, ordered by customer name.
	OrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error)
	// OutstandingDebt sums positive customer balances
	OutstandingDebt(ctx context.Context) (float64, error)
}
