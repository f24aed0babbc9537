package models

import "time"

// Customer is the khata profile. Phone is the natural key: sales reference
// customers by phone, the id only matters for ledger rows.
type Customer struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Phone           string  `gorm:"uniqueIndex;size:10;not null" json:"phone"`
	Name            string  `gorm:"size:180" json:"name"`
	Email           string  `gorm:"size:180" json:"email"`
	AadhaarNumber   string  `gorm:"size:12" json:"aadhaar_number"`
	AadhaarPhotoURL string  `json:"aadhaar_photo_url"`
	Address         string  `json:"address"`
	IsVIP           bool    `gorm:"not null;default:false" json:"is_vip"`
	IsBanned        bool    `gorm:"not null;default:false" json:"is_banned"`
	Rating          float64 `gorm:"not null;default:5" json:"rating"`
	Notes           string  `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
