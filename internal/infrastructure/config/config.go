package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rl1809/stockpile/internal/core/domain"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Store  StoreConfig  `mapstructure:"store"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StoreConfig holds inventory store configuration
type StoreConfig struct {
	// File is the default inventory document; individual commands may
	// override it per invocation.
	File              string `mapstructure:"file"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load loads configuration from environment variables and an optional
// .env file, falling back to defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "Stockpile")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("store.file", domain.DefaultInventoryFile)
	viper.SetDefault("store.low_stock_threshold", domain.DefaultLowStockThreshold)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.filename", "")
}

func bindEnvVars() {
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")

	viper.BindEnv("store.file", "STORE_FILE")
	viper.BindEnv("store.low_stock_threshold", "STORE_LOW_STOCK_THRESHOLD")

	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")
}

func validateConfig(cfg *Config) error {
	if cfg.Store.File == "" {
		return fmt.Errorf("store file is required")
	}

	if cfg.Store.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative")
	}

	return nil
}
