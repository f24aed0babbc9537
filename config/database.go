package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// bindPlainEnv maps the plain env names the hosting provider sets
// (DATABASE_URL, ADMIN_USERNAME, ADMIN_PASSWORD, JWT_SECRET, PORT)
// over the viper config.
func bindPlainEnv(c *Config) {
	if s := os.Getenv("DATABASE_URL"); s != "" {
		c.Database.URL = s
	}
	if s := os.Getenv("ADMIN_USERNAME"); s != "" {
		c.Auth.AdminUsername = s
	}
	if s := os.Getenv("ADMIN_PASSWORD"); s != "" {
		c.Auth.AdminPassword = s
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		c.Auth.JWTSecret = s
	}
	if s := os.Getenv("PORT"); s != "" {
		c.Server.Port = s
	}
}

func ConnectDB() {
	cfg := Get()

	dbURL := cfg.Database.URL
	if dbURL == "" {
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Database.Host, cfg.Database.User, cfg.Database.Password,
			cfg.Database.Name, cfg.Database.Port,
		)
	} else {
		// hosted Postgres usually wants sslmode=require
		if !strings.Contains(dbURL, "sslmode=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "sslmode=require"
		}
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Duration(cfg.Database.SlowThreshold) * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("❌ failed to connect to database: %v", err)
	}

	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("⚠️  failed to set timezone UTC: %v", err)
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	log.Printf("✅ DB connected: db=%s user=%s", dbName, currentUser)

	DB = db
}
