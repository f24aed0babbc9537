package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/service"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
)

func GetDashboardMetrics(c *gin.Context) {
	svc := service.NewService(config.DB)
	metrics, err := svc.DashboardMetrics()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch dashboard metrics", err)
		return
	}
	utils.Success(c, "Dashboard metrics fetched successfully", metrics)
}

// GetProductSales answers the chart: units sold per product, top 10 unless
// specific products are requested.
func GetProductSales(c *gin.Context) {
	var f service.ProductSalesFilter

	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			f.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1)
			f.To = &end
		}
	}
	if products := c.Query("products"); products != "" {
		for _, name := range strings.Split(products, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Products = append(f.Products, name)
			}
		}
	}

	svc := service.NewService(config.DB)
	rows, err := svc.ProductSales(f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch product sales", err)
		return
	}
	utils.Success(c, "Product sales fetched successfully", rows)
}
