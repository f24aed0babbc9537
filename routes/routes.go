package routes

import (
	"github.com/abhishekkumar914/inventory-management/controllers"
	"github.com/abhishekkumar914/inventory-management/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/login", controllers.Login)

	admin := api.Group("/")
	admin.Use(middlewares.AdminAuth())
	{
		admin.GET("/products", controllers.GetAllProducts)
		admin.POST("/products", controllers.CreateProduct)
		admin.GET("/products/export/csv", controllers.ExportProductsCSV)
		admin.GET("/products/:id", controllers.GetProductByID)
		admin.PUT("/products/:id", controllers.UpdateProduct)
		admin.POST("/products/:id/restock", controllers.RestockProduct)
		admin.POST("/products/:id/deactivate", controllers.DeactivateProduct)
		admin.POST("/products/:id/reactivate", controllers.ReactivateProduct)

		admin.GET("/sales", controllers.GetAllSales)
		admin.POST("/sales", controllers.CreateSale)
		admin.GET("/sales/export/csv", controllers.ExportSalesCSV)
		admin.GET("/sales/:id", controllers.GetSaleByID)
		admin.DELETE("/sales/:id", controllers.DeleteSale)
		admin.GET("/sales/:id/bill", controllers.DownloadSaleBill)

		admin.GET("/customers", controllers.GetAllCustomers)
		admin.POST("/customers", controllers.CreateCustomer)
		admin.POST("/customers/block", controllers.BlockCustomer)
		admin.GET("/customers/export/csv", controllers.ExportCustomersCSV)
		admin.GET("/customers/:id", controllers.GetCustomerByID)
		admin.PUT("/customers/:id", controllers.UpdateCustomer)
		admin.POST("/customers/:id/ban", controllers.BanCustomer)
		admin.POST("/customers/:id/unban", controllers.UnbanCustomer)
		admin.GET("/customers/:id/balance", controllers.GetCustomerBalance)
		admin.GET("/customers/:id/statement", controllers.DownloadCustomerStatement)
		admin.GET("/customers/:id/transactions", controllers.GetCustomerTransactions)
		admin.POST("/customers/:id/transactions", controllers.CreateCustomerTransaction)
		admin.PUT("/customers/:id/transactions/:txnId", controllers.UpdateCustomerTransaction)
		admin.DELETE("/customers/:id/transactions/:txnId", controllers.DeleteCustomerTransaction)

		admin.GET("/exports/items", controllers.GetExportItems)
		admin.GET("/exports", controllers.GetAllExportEntries)
		admin.POST("/exports", controllers.CreateExportEntry)
		admin.GET("/exports/export/csv", controllers.ExportEntriesCSV)
		admin.DELETE("/exports/:id", controllers.DeleteExportEntry)

		admin.GET("/export-customers", controllers.GetAllExportCustomers)
		admin.POST("/export-customers", controllers.CreateExportCustomer)
		admin.GET("/export-customers/export/csv", controllers.ExportCustomersCSVDownload)
		admin.PUT("/export-customers/:id", controllers.UpdateExportCustomer)
		admin.GET("/export-customers/:id/transactions", controllers.GetExportCustomerTransactions)
		admin.POST("/export-customers/:id/transactions", controllers.CreateExportCustomerTransaction)
		admin.PUT("/export-customers/:id/transactions/:txnId", controllers.UpdateExportCustomerTransaction)
		admin.DELETE("/export-customers/:id/transactions/:txnId", controllers.DeleteExportCustomerTransaction)

		admin.GET("/dashboard/metrics", controllers.GetDashboardMetrics)
		admin.GET("/dashboard/product-sales", controllers.GetProductSales)

		admin.POST("/uploads/aadhaar", controllers.UploadAadhaarPhoto)
	}
}
