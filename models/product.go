package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	Name         string  `json:"name"`
	SKU          string  `json:"sku" gorm:"uniqueIndex;size:64"`
	UnitPrice    float64 `json:"unit_price"`
	CurrentStock int     `json:"current_stock"`
	IsActive     bool    `json:"is_active" gorm:"not null;default:true"`
}

type MovementType string

const (
	MovementRestock MovementType = "restock" // manual restock -> stock up
	MovementSale    MovementType = "sale"    // sale item insert -> stock down
)

type InventoryMovement struct {
	gorm.Model
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `json:"product"`

	Type           MovementType `gorm:"size:20;not null" json:"type"`
	QuantityChange int          `gorm:"not null" json:"quantity_change"` // signed: +restock, -sale
	UnitCost       *float64     `json:"unit_cost,omitempty"`
	Notes          string       `gorm:"size:255" json:"notes"`
}
