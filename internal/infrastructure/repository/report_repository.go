package repository

import (
	"context"
	"time"

	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	domainRepo "github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) OrdersBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.order_date >= ? AND orders.order_date < ?", start, end).
		Order("customers.name ASC").
		Find(&orders).Error
	return orders, err
}

func (r *reportRepository) OutstandingDebt(ctx context.Context) (float64, error) {
	var debt float64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("current_balance > 0").
		Select("COALESCE(SUM(current_balance), 0)").
		Scan(&debt).Error
	return debt, err
}
