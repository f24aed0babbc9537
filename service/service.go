package service

import (
	"time"

	"github.com/abhishekkumar914/inventory-management/models"

	"gorm.io/gorm"
)

const lowStockCutoff = 10

type ProductQty struct {
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}

type DashboardMetrics struct {
	TotalSales         int64            `json:"total_sales"`
	TodaySalesCount    int64            `json:"today_sales_count"`
	TotalUnitsSold     int64            `json:"total_units_sold"`
	ActiveProducts     int64            `json:"active_products"`
	LowStockProducts   []models.Product `json:"low_stock_products"`
	TopSellingProducts []ProductQty     `json:"top_selling_products"`
}

type ProductSalesFilter struct {
	From     *time.Time
	To       *time.Time
	Products []string
}

type Service interface {
	DashboardMetrics() (DashboardMetrics, error)
	ProductSales(f ProductSalesFilter) ([]ProductQty, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

func (s *service) DashboardMetrics() (DashboardMetrics, error) {
	var m DashboardMetrics

	if err := s.db.Model(&models.Sale{}).Count(&m.TotalSales).Error; err != nil {
		return m, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if err := s.db.Model(&models.Sale{}).
		Where("created_at >= ?", today).
		Count(&m.TodaySalesCount).Error; err != nil {
		return m, err
	}

	if err := s.db.Model(&models.SaleItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&m.TotalUnitsSold).Error; err != nil {
		return m, err
	}

	if err := s.db.Model(&models.Product{}).
		Where("is_active = true").
		Count(&m.ActiveProducts).Error; err != nil {
		return m, err
	}

	if err := s.db.Model(&models.Product{}).
		Where("is_active = true AND current_stock < ?", lowStockCutoff).
		Order("current_stock ASC").
		Find(&m.LowStockProducts).Error; err != nil {
		return m, err
	}

	err := s.db.Model(&models.SaleItem{}).
		Select("products.name AS name, SUM(sale_items.quantity) AS total_quantity").
		Joins("INNER JOIN products ON products.id = sale_items.product_id").
		Where("products.deleted_at IS NULL").
		Group("products.name").
		Order("total_quantity DESC").
		Limit(5).
		Scan(&m.TopSellingProducts).Error
	return m, err
}

func (s *service) ProductSales(f ProductSalesFilter) ([]ProductQty, error) {
	q := s.db.Model(&models.SaleItem{}).
		Select("products.name AS name, SUM(sale_items.quantity) AS total_quantity").
		Joins("INNER JOIN products ON products.id = sale_items.product_id").
		Joins("INNER JOIN sales ON sales.id = sale_items.sale_id").
		Where("products.deleted_at IS NULL").
		Group("products.name").
		Order("total_quantity DESC")

	if f.From != nil {
		q = q.Where("sales.created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("sales.created_at < ?", *f.To)
	}
	if len(f.Products) > 0 {
		q = q.Where("products.name IN ?", f.Products)
	} else {
		q = q.Limit(10)
	}

	var rows []ProductQty
	err := q.Scan(&rows).Error
	return rows, err
}
