package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku" binding:"required"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	InitialStock int     `json:"initial_stock" binding:"gte=0"`
}

type ProductUpdateInput struct {
	Name      *string  `json:"name"`
	SKU       *string  `json:"sku"`
	UnitPrice *float64 `json:"unit_price"`
}

type RestockInput struct {
	Quantity int      `json:"quantity" binding:"required,gt=0"`
	UnitCost *float64 `json:"unit_cost"`
	Notes    string   `json:"notes"`
}

func GetAllProducts(c *gin.Context) {
	q := config.DB.Model(&models.Product{}).Order("name ASC")

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	switch c.Query("active") {
	case "", "all":
	case "true":
		q = q.Where("is_active = true")
	case "false":
		q = q.Where("is_active = false")
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch products", err)
		return
	}
	utils.Success(c, "Products fetched successfully", products)
}

func GetProductByID(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Product not found", err)
		return
	}

	var movements []models.InventoryMovement
	config.DB.Where("product_id = ?", product.ID).
		Order("created_at DESC").Limit(50).Find(&movements)

	utils.Success(c, "Product fetched successfully", gin.H{
		"product":   product,
		"movements": movements,
	})
}

func CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}
	if !utils.ValidSKU(in.SKU) {
		utils.Error(c, http.StatusBadRequest, "SKU must be alphanumeric, at least 3 characters", nil)
		return
	}

	product := models.Product{
		Name:         in.Name,
		SKU:          in.SKU,
		UnitPrice:    in.UnitPrice,
		CurrentStock: in.InitialStock,
		IsActive:     true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if in.InitialStock > 0 {
			mv := models.InventoryMovement{
				ProductID:      product.ID,
				Type:           models.MovementRestock,
				QuantityChange: in.InitialStock,
				Notes:          "Initial stock",
			}
			return tx.Create(&mv).Error
		}
		return nil
	})
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	utils.Success(c, "Product created successfully", product)
}

func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Product not found", err)
		return
	}

	var in ProductUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.SKU != nil {
		if !utils.ValidSKU(*in.SKU) {
			utils.Error(c, http.StatusBadRequest, "SKU must be alphanumeric, at least 3 characters", nil)
			return
		}
		updates["sku"] = *in.SKU
	}
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			utils.Error(c, http.StatusBadRequest, "Unit price cannot be negative", nil)
			return
		}
		updates["unit_price"] = *in.UnitPrice
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
			return
		}
	}
	utils.Success(c, "Product updated successfully", product)
}

// RestockProduct adds stock and records the movement in one transaction.
// Stock never changes without a matching movement row.
func RestockProduct(c *gin.Context) {
	var in RestockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload", err)
		return
	}

	var product models.Product
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&product, c.Param("id")).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", in.Quantity)).Error; err != nil {
			return err
		}
		mv := models.InventoryMovement{
			ProductID:      product.ID,
			Type:           models.MovementRestock,
			QuantityChange: in.Quantity,
			UnitCost:       in.UnitCost,
			Notes:          in.Notes,
		}
		return tx.Create(&mv).Error
	})
	if err != nil {
		utils.Error(c, http.StatusBadRequest, utils.TranslateDBError(err), nil)
		return
	}

	config.DB.First(&product, product.ID)
	utils.Success(c, "Product restocked successfully", product)
}

// DeactivateProduct hides a product from new sales without touching its
// history. There is no hard delete: sold products must stay resolvable
// from old sale items.
func DeactivateProduct(c *gin.Context) {
	setProductActive(c, false, "Product deactivated successfully")
}

func ReactivateProduct(c *gin.Context) {
	setProductActive(c, true, "Product reactivated successfully")
}

func setProductActive(c *gin.Context, active bool, msg string) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Product not found", err)
		return
	}
	if err := config.DB.Model(&product).Update("is_active", active).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	utils.Success(c, msg, product)
}

func ExportProductsCSV(c *gin.Context) {
	var products []models.Product
	if err := config.DB.Order("name ASC").Find(&products).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch products", err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products-`+time.Now().Format("2006-01-02")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"Name", "SKU", "Unit Price", "Current Stock", "Status", "Created At"})
	for _, p := range products {
		status := "active"
		if !p.IsActive {
			status = "inactive"
		}
		w.Write([]string{
			p.Name,
			p.SKU,
			strconv.FormatFloat(p.UnitPrice, 'f', 2, 64),
			strconv.Itoa(p.CurrentStock),
			status,
			p.CreatedAt.Format("2006-01-02"),
		})
	}
}
