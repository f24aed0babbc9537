package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap holds the free-form key/value custom fields on a sale.
// Stored as a jsonb blob, no schema.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

type Sale struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	CustomerName    string  `gorm:"size:180;not null" json:"customer_name"`
	Phone           string  `gorm:"size:10;index" json:"phone"`
	AadhaarNumber   string  `gorm:"size:12" json:"aadhaar_number"`
	AadhaarPhotoURL string  `json:"aadhaar_photo_url"`
	Notes           string  `json:"notes"`
	CustomFields    JSONMap `gorm:"type:jsonb" json:"custom_fields"`

	// PaymentMode is the primary (first) mode; the breakdown lives in Payments.
	PaymentMode string  `gorm:"size:20" json:"payment_mode"`
	AmountPaid  float64 `json:"amount_paid"` // legacy single field, kept in sync with Payments

	Items    []SaleItem    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sale_items"`
	Payments []SalePayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sale_payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `gorm:"index;not null" json:"sale_id"`
	ProductID   uint    `gorm:"not null" json:"product_id"`
	Product     Product `json:"product"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	PriceAtSale float64 `gorm:"not null" json:"price_at_sale"` // unit price snapshot
}

type SalePayment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `gorm:"index;not null" json:"sale_id"`
	PaymentMode string  `gorm:"size:20;not null" json:"payment_mode"` // cash | upi | bank_transfer | cheque
	Amount      float64 `gorm:"not null" json:"amount"`
}

// Total is the invoice value: Σ price_at_sale × quantity.
func (s *Sale) Total() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.PriceAtSale * float64(it.Quantity)
	}
	return sum
}

// TotalPaid prefers the split-payment rows and falls back to the legacy
// amount_paid column for rows written before split payments existed.
func (s *Sale) TotalPaid() float64 {
	if len(s.Payments) > 0 {
		var sum float64
		for _, p := range s.Payments {
			sum += p.Amount
		}
		return sum
	}
	return s.AmountPaid
}
