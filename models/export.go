package models

import "time"

// ExportItem is one crop in the fixed export catalog.
type ExportItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var ExportItems = []ExportItem{
	{Key: "sweetpotato", Name: "Sweetpotato", Emoji: "🍠"},
	{Key: "paddy_lamba", Name: "Paddy (Lamba)", Emoji: "🌾"},
	{Key: "paddy_mota", Name: "Paddy (Mota)", Emoji: "🌾"},
	{Key: "wheat", Name: "Wheat", Emoji: "🌿"},
	{Key: "sarso", Name: "Sarso", Emoji: "🌻"},
	{Key: "madua", Name: "Madua", Emoji: "🌱"},
}

func ValidExportItemKey(key string) bool {
	for _, it := range ExportItems {
		if it.Key == key {
			return true
		}
	}
	return false
}

type ExportEntry struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ExportItemKey string  `gorm:"size:32;index;not null" json:"export_item_key"`
	Quantity      float64 `gorm:"not null" json:"quantity"`
	Unit          string  `gorm:"size:10;not null;default:kg" json:"unit"`
	RatePerUnit   float64 `gorm:"not null" json:"rate_per_unit"`
	TotalAmount   float64 `gorm:"not null" json:"total_amount"` // quantity × rate
	AmountPaid    float64 `json:"amount_paid"`
	PaymentMode   string  `gorm:"size:20" json:"payment_mode"` // single mode or "split"

	BuyerName     string `gorm:"size:180" json:"buyer_name"`
	BuyerPhone    string `gorm:"size:10;index" json:"buyer_phone"`
	VehicleNumber string `gorm:"size:20" json:"vehicle_number"`
	Notes         string `json:"notes"`

	ExportDate time.Time `gorm:"not null;index" json:"export_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExportCustomer is the buyer profile for the export khata, keyed by phone
// like the store customers.
type ExportCustomer struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Phone   string `gorm:"uniqueIndex;size:10;not null" json:"phone"`
	Name    string `gorm:"size:180" json:"name"`
	Email   string `gorm:"size:180" json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
