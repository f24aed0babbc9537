package controllers

import (
	"fmt"

	"github.com/abhishekkumar914/inventory-management/models"

	"gorm.io/gorm"
)

// deductStock locks the product row, refuses to go below zero, and records
// the movement. The old system did this with an invisible DB trigger; here
// it is an explicit call inside the sale transaction.
func deductStock(tx *gorm.DB, productID uint, qty int) (models.Product, error) {
	var p models.Product
	if err := lockForUpdate(tx).First(&p, productID).Error; err != nil {
		return p, err
	}

	if !p.IsActive {
		return p, fmt.Errorf("product %q is inactive", p.Name)
	}
	if p.CurrentStock < qty {
		return p, fmt.Errorf("Insufficient stock for %s (have %d, need %d)", p.Name, p.CurrentStock, qty)
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", p.ID).
		UpdateColumn("current_stock", gorm.Expr("current_stock - ?", qty)).Error; err != nil {
		return p, err
	}

	mv := models.InventoryMovement{
		ProductID:      p.ID,
		Type:           models.MovementSale,
		QuantityChange: -qty,
	}
	return p, tx.Create(&mv).Error
}
