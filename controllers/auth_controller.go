package controllers

import (
	"net/http"
	"time"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the single admin account (seeded from env) and hands out a
// JWT. Replaces the old localStorage isAdminLoggedIn flag.
func Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload", "error": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	ttl := time.Duration(config.Get().Auth.TokenHours) * time.Hour
	token, err := utils.GenerateToken(admin.ID, admin.Username, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
