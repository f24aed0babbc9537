package models

import "gorm.io/gorm"

type Admin struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}
