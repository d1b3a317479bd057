package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/entity"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/enum"
	"github.com/sevderk/lavash-bakery-supabase/internal/domain/repository"
)

// ReportService builds end-of-day reports and dashboard aggregates
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DailyReportRow is one order line of the end-of-day report
type DailyReportRow struct {
	OrderID        uuid.UUID        `json:"order_id"`
	CustomerName   string           `json:"customer_name"`
	ProductSummary string           `json:"product_summary"`
	Quantity       int              `json:"quantity"`
	TotalPrice     float64          `json:"total_price"`
	Status         enum.OrderStatus `json:"status"`
}

// DailyReportSummary totals the report
type DailyReportSummary struct {
	OrderCount    int     `json:"order_count"`
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// DailyReport is the end-of-day report for one date
type DailyReport struct {
	Date    string             `json:"date"`
	Rows    []DailyReportRow   `json:"rows"`
	Summary DailyReportSummary `json:"summary"`
}

// GetDailyReport returns the orders of the given calendar day, ordered by
// customer name, plus the day's totals.
func (s *ReportService) GetDailyReport(ctx context.Context, day time.Time) (*DailyReport, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	orders, err := s.reportRepo.OrdersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date: start.Format("2006-01-02"),
		Rows: make([]DailyReportRow, 0, len(orders)),
	}

	for i := range orders {
		order := &orders[i]
		report.Rows = append(report.Rows, DailyReportRow{
			OrderID:        order.ID,
			CustomerName:   order.Customer.Name,
			ProductSummary: productSummary(order),
			Quantity:       order.Quantity,
			TotalPrice:     order.TotalPrice,
			Status:         order.Status,
		})
		report.Summary.OrderCount++
		report.Summary.TotalQuantity += order.Quantity
		report.Summary.TotalAmount += order.TotalPrice
	}

	return report, nil
}

// DashboardStats are the home screen aggregates
type DashboardStats struct {
	TodayQuantity      int     `json:"today_quantity"`
	TodayRevenue       float64 `json:"today_revenue"`
	TodayCustomerCount int     `json:"today_customer_count"`
	TotalDebt          float64 `json:"total_debt"`
}

// GetDashboardStats aggregates today's orders and the total outstanding debt
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	orders, err := s.reportRepo.OrdersBetween(ctx, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{}
	seen := make(map[uuid.UUID]struct{})
	for i := range orders {
		order := &orders[i]
		// Item quantities are more precise than the parent's aggregate when
		// items exist; simple-variant orders have no item rows.
		itemQty := 0
		for _, item := range order.Items {
			itemQty += item.Quantity
		}
		if itemQty > 0 {
			stats.TodayQuantity += itemQty
		} else {
			stats.TodayQuantity += order.Quantity
		}
		stats.TodayRevenue += order.TotalPrice
		if _, ok := seen[order.CustomerID]; !ok {
			seen[order.CustomerID] = struct{}{}
			stats.TodayCustomerCount++
		}
	}

	debt, err := s.reportRepo.OutstandingDebt(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalDebt = debt

	return stats, nil
}

// productSummary formats an order's items as "3x Lavaş, 2x Simit", falling
// back to "N Adet" for simple-variant orders without item rows.
func productSummary(order *entity.Order) string {
	if len(order.Items) == 0 {
		return fmt.Sprintf("%d Adet", order.Quantity)
	}
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.Product.Name
		if name == "" {
			name = "?"
		}
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, name))
	}
	return strings.Join(parts, ", ")
}
