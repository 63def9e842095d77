package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string `mapstructure:"PORT" validate:"required,numeric"`
	IsProduction bool   `mapstructure:"IS_PRODUCTION"`
	LogLevel     string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// Market data provider
	MarketDataBaseURL string        `mapstructure:"MARKET_DATA_BASE_URL" validate:"required,url"`
	MarketDataTimeout time.Duration `mapstructure:"MARKET_DATA_TIMEOUT" validate:"gt=0"`
	MarketDataRPS     float64       `mapstructure:"MARKET_DATA_RPS" validate:"gte=0"`

	// Tracked asset and initial selection
	AssetID         string `mapstructure:"ASSET_ID" validate:"required"`
	AssetName       string `mapstructure:"ASSET_NAME" validate:"required"`
	AssetLabel      string `mapstructure:"ASSET_LABEL" validate:"required"`
	DefaultCurrency string `mapstructure:"DEFAULT_CURRENCY" validate:"required,alpha"`

	// HTTP surface
	APIRateLimit       string   `mapstructure:"API_RATE_LIMIT" validate:"required"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"min=1,dive,required"`

	SurfaceRedrawInterval time.Duration `mapstructure:"SURFACE_REDRAW_INTERVAL" validate:"gte=0"`
	ShutdownTimeout       time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MARKET_DATA_BASE_URL", "https://api.coingecko.com/api/v3")
	v.SetDefault("MARKET_DATA_TIMEOUT", "10s")
	v.SetDefault("MARKET_DATA_RPS", 0.5) // public tier allows roughly 30 calls per minute
	v.SetDefault("ASSET_ID", "bitcoin")
	v.SetDefault("ASSET_NAME", "Bitcoin")
	v.SetDefault("ASSET_LABEL", "BTC")
	v.SetDefault("DEFAULT_CURRENCY", "usd")
	v.SetDefault("API_RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SURFACE_REDRAW_INTERVAL", "0s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "5s")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		MarketDataBaseURL:  strings.TrimRight(v.GetString("MARKET_DATA_BASE_URL"), "/"),
		MarketDataRPS:      v.GetFloat64("MARKET_DATA_RPS"),
		AssetID:            v.GetString("ASSET_ID"),
		AssetName:          v.GetString("ASSET_NAME"),
		AssetLabel:         v.GetString("ASSET_LABEL"),
		DefaultCurrency:    strings.ToLower(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY"))),
		APIRateLimit:       v.GetString("API_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.MarketDataTimeout, err = parseDuration(v, "MARKET_DATA_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SurfaceRedrawInterval, err = parseDuration(v, "SURFACE_REDRAW_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration(v, "SHUTDOWN_TIMEOUT"); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
