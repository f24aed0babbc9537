package main

import (
	"log"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/routes"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	config.ConnectDB()

	err = config.DB.AutoMigrate(
		&models.Admin{},
		&models.Product{},
		&models.InventoryMovement{},
		&models.Sale{},
		&models.SaleItem{},
		&models.SalePayment{},
		&models.Customer{},
		&models.CustomerTransaction{},
		&models.ExportEntry{},
		&models.ExportCustomer{},
		&models.ExportCustomerTransaction{},
	)
	if err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	config.SeedAdmin()

	if cfg.Auth.JWTSecret != "" {
		utils.Secret = []byte(cfg.Auth.JWTSecret)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "🚀 Store API is running"})
	})
	r.Static("/uploads", cfg.Upload.Dir)

	routes.SetupRoutes(r)

	log.Printf("✅ Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
