package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL           string `mapstructure:"url"`
	Host          string `mapstructure:"host"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Name          string `mapstructure:"name"`
	Port          string `mapstructure:"port"`
	SlowThreshold int    `mapstructure:"slow_threshold_ms"`
}

type AuthConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenHours    int    `mapstructure:"token_hours"`
}

type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

type StoreConfig struct {
	Name string `mapstructure:"name"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Store    StoreConfig    `mapstructure:"store"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load reads config.yaml (optional) and environment overrides, e.g.
// STORE_AUTH_ADMIN_PASSWORD or the plain DATABASE_URL / ADMIN_USERNAME /
// ADMIN_PASSWORD names used on the hosting side.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		v.SetDefault("server.port", "8080")
		v.SetDefault("server.mode", "release")
		v.SetDefault("database.host", "localhost")
		v.SetDefault("database.user", "postgres")
		v.SetDefault("database.password", "12345")
		v.SetDefault("database.name", "store")
		v.SetDefault("database.port", "5432")
		v.SetDefault("database.slow_threshold_ms", 200)
		v.SetDefault("auth.token_hours", 24)
		v.SetDefault("auth.jwt_secret", "khata-dev-secret")
		v.SetDefault("upload.dir", "uploads")
		v.SetDefault("upload.base_url", "")
		v.SetDefault("store.name", "Abhishek Store")

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetEnvPrefix("STORE")
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr != nil {
			// config file is optional, env + defaults are enough
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok && path != "" {
				err = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		// hosting-style env names win when set
		bindPlainEnv(&c)

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration. Call Load() once at startup.
func Get() *Config {
	return appConfig
}
