package config

import (
	"log"

	"github.com/abhishekkumar914/inventory-management/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin makes sure the single admin account from the environment exists.
// The password hash is refreshed on every boot so rotating ADMIN_PASSWORD
// just needs a redeploy.
func SeedAdmin() {
	cfg := Get()
	if cfg.Auth.AdminUsername == "" || cfg.Auth.AdminPassword == "" {
		log.Println("⚠️  ADMIN_USERNAME/ADMIN_PASSWORD not set, login disabled")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ failed to hash admin password: %v", err)
	}

	var admin models.Admin
	err = DB.Where("username = ?", cfg.Auth.AdminUsername).First(&admin).Error
	if err != nil {
		admin = models.Admin{
			Username:     cfg.Auth.AdminUsername,
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Fatalf("❌ failed to seed admin: %v", err)
		}
		log.Printf("✅ admin account %q created", admin.Username)
		return
	}

	DB.Model(&admin).Updates(map[string]any{
		"password_hash": string(hash),
		"is_active":     true,
	})
}
