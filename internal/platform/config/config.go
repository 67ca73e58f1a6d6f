package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	DecimalPlaces int32
	RateLimit     string
	AutoMigrate   bool
}

// LoadConfig loads configuration from environment variables and .env file if
// present. Real environment variables override .env values, which override the
// defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DECIMAL_PLACES", 2)
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("AUTO_MIGRATE", true)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		DecimalPlaces: viper.GetInt32("DECIMAL_PLACES"),
		RateLimit:     viper.GetString("RATE_LIMIT"),
		AutoMigrate:   viper.GetBool("AUTO_MIGRATE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.DecimalPlaces < 0 {
		log.Printf("Warning: Invalid DECIMAL_PLACES (%d). Defaulting to 2.\n", cfg.DecimalPlaces)
		cfg.DecimalPlaces = 2
	}

	return cfg, nil
}
