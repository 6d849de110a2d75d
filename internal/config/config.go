package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr        string
	CORSOrigin      string
	ShutdownTimeout time.Duration

	JWTSecret string

	StorageDriver string
	DBDSN         string
	RedisURL      string
	RedisPrefix   string
	RedisTTL      time.Duration
	ReadThrough   bool

	CartKeyPrefix      string
	FavoritesKeyPrefix string
	TaxRate            decimal.Decimal

	OrderAPIBaseURL string
	OrderAPITimeout time.Duration
}

// LoadDotEnv reads .env into the process environment if the file exists.
// It reports whether a file was loaded.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:5173"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		JWTSecret: os.Getenv("JWT_SECRET"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		DBDSN:         os.Getenv("DB_DSN_PRIMARY"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix:   getEnv("REDIS_PREFIX", "storefront:"),
		RedisTTL:      getEnvDuration("REDIS_TTL", 0),
		ReadThrough:   getEnvBool("STORE_READ_THROUGH", false),

		CartKeyPrefix:      getEnv("CART_KEY_PREFIX", "cart-"),
		FavoritesKeyPrefix: os.Getenv("FAVORITES_KEY_PREFIX"),

		OrderAPIBaseURL: strings.TrimRight(getEnv("ORDER_API_BASE_URL", "http://ejfoodieordernow.runasp.net/api"), "/"),
		OrderAPITimeout: getEnvDuration("ORDER_API_TIMEOUT", 15*time.Second),
	}

	rate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.05"))
	if err != nil {
		return Config{}, fmt.Errorf("TAX_RATE: %w", err)
	}
	if rate.IsNegative() {
		return Config{}, errors.New("TAX_RATE must not be negative")
	}
	cfg.TaxRate = rate

	// Without a secret token roles cannot be trusted.
	if cfg.AppEnv != "dev" && cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required outside the dev environment")
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverRedis:
	case DriverMySQL:
		if cfg.DBDSN == "" {
			return Config{}, errors.New("DB_DSN_PRIMARY is required for the mysql storage driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
