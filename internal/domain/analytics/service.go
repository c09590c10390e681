// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/voltstore/backend/internal/config"
	"github.com/voltstore/backend/internal/domain/order"
	"gorm.io/gorm"
)

// Service handles admin dashboard analytics
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// monthsOfHistory is how far back the monthly series go
const monthsOfHistory = 6

// DashboardStats represents the admin dashboard payload
type DashboardStats struct {
	TotalRevenue  int64   `json:"total_revenue"` // In cents
	TotalOrders   int64   `json:"total_orders"`
	TotalProducts int64   `json:"total_products"`
	TotalUsers    int64   `json:"total_users"`
	RevenueChange float64 `json:"revenue_change"` // Percentage vs previous month
	OrdersChange  float64 `json:"orders_change"`  // Percentage vs previous month

	RevenueByMonth []MonthlyPoint     `json:"revenue_by_month"`
	OrdersByMonth  []MonthlyPoint     `json:"orders_by_month"`
	RecentOrders   []order.Order      `json:"recent_orders"`
	TopProducts    []ProductSalesData `json:"top_products"`
}

// MonthlyPoint is a single month in a time series
type MonthlyPoint struct {
	Month string `json:"month"` // YYYY-MM
	Value int64  `json:"value"`
}

// ProductSalesData represents a product's sales totals
type ProductSalesData struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	UnitsSold   int64  `json:"units_sold"`
	Revenue     int64  `json:"revenue"` // In cents
}

// GetDashboardStats assembles the admin dashboard. Cancelled orders are
// excluded from every revenue figure.
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now().UTC()

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	s.db.Raw("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status != 'cancelled' AND deleted_at IS NULL").Scan(&stats.TotalRevenue)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL").Scan(&stats.TotalOrders)
	s.db.Raw("SELECT COUNT(*) FROM products WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalProducts)
	s.db.Raw("SELECT COUNT(*) FROM users WHERE role = 'customer' AND deleted_at IS NULL").Scan(&stats.TotalUsers)

	var thisMonthRevenue, lastMonthRevenue int64
	s.db.Raw("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status != 'cancelled' AND deleted_at IS NULL AND created_at >= ?", thisMonth).Scan(&thisMonthRevenue)
	s.db.Raw("SELECT COALESCE(SUM(total), 0) FROM orders WHERE status != 'cancelled' AND deleted_at IS NULL AND created_at >= ? AND created_at < ?", lastMonth, thisMonth).Scan(&lastMonthRevenue)
	if lastMonthRevenue > 0 {
		stats.RevenueChange = float64(thisMonthRevenue-lastMonthRevenue) / float64(lastMonthRevenue) * 100
	}

	var thisMonthOrders, lastMonthOrders int64
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL AND created_at >= ?", thisMonth).Scan(&thisMonthOrders)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE deleted_at IS NULL AND created_at >= ? AND created_at < ?", lastMonth, thisMonth).Scan(&lastMonthOrders)
	if lastMonthOrders > 0 {
		stats.OrdersChange = float64(thisMonthOrders-lastMonthOrders) / float64(lastMonthOrders) * 100
	}

	revenueByMonth, ordersByMonth, err := s.getMonthlySeries(thisMonth)
	if err != nil {
		return nil, err
	}
	stats.RevenueByMonth = revenueByMonth
	stats.OrdersByMonth = ordersByMonth

	if err := s.db.Preload("Items").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	topProducts, err := s.getTopProducts(5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = topProducts

	return stats, nil
}

// getMonthlySeries builds zero-filled revenue and order series for the last
// months, oldest first
func (s *Service) getMonthlySeries(thisMonth time.Time) ([]MonthlyPoint, []MonthlyPoint, error) {
	start := thisMonth.AddDate(0, -(monthsOfHistory - 1), 0)

	revenueByMonth := make(map[string]int64)
	ordersByMonth := make(map[string]int64)

	rows, err := s.db.Raw(`
		SELECT
			TO_CHAR(created_at, 'YYYY-MM') as month,
			COALESCE(SUM(total), 0) as revenue,
			COUNT(*) as order_count
		FROM orders
		WHERE created_at >= ? AND status != 'cancelled' AND deleted_at IS NULL
		GROUP BY TO_CHAR(created_at, 'YYYY-MM')
	`, start).Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load monthly sales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month string
		var revenue, orderCount int64
		if err := rows.Scan(&month, &revenue, &orderCount); err != nil {
			continue
		}
		revenueByMonth[month] = revenue
		ordersByMonth[month] = orderCount
	}

	revenueSeries := make([]MonthlyPoint, 0, monthsOfHistory)
	orderSeries := make([]MonthlyPoint, 0, monthsOfHistory)
	for i := 0; i < monthsOfHistory; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		revenueSeries = append(revenueSeries, MonthlyPoint{Month: month, Value: revenueByMonth[month]})
		orderSeries = append(orderSeries, MonthlyPoint{Month: month, Value: ordersByMonth[month]})
	}

	return revenueSeries, orderSeries, nil
}

// getTopProducts ranks products by units sold across non-cancelled orders
func (s *Service) getTopProducts(limit int) ([]ProductSalesData, error) {
	rows, err := s.db.Raw(`
		SELECT
			p.id,
			p.name,
			p.sku,
			COALESCE(SUM(oi.quantity), 0) as units_sold,
			COALESCE(SUM(oi.total_price), 0) as revenue
		FROM products p
		JOIN order_items oi ON p.id = oi.product_id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status != 'cancelled' AND o.deleted_at IS NULL
		GROUP BY p.id, p.name, p.sku
		ORDER BY units_sold DESC
		LIMIT ?
	`, limit).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	defer rows.Close()

	var topProducts []ProductSalesData
	for rows.Next() {
		var p ProductSalesData
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.SKU, &p.UnitsSold, &p.Revenue); err != nil {
			continue
		}
		topProducts = append(topProducts, p)
	}

	return topProducts, nil
}
