package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type GatewayConfig struct {
	StoreID       string
	StorePassword string
	Live          bool
	Currency      string
}

type Config struct {
	App struct {
		Port          string
		PublicBaseURL string
		ClientBaseURL string
		AllowedOrigin string
	}
	Postgres PostgresConfig
	Gateway  GatewayConfig
	Auth     struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
}

// NewConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "5000")
	cfg.App.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.App.Port)
	cfg.App.ClientBaseURL = getEnv("CLIENT_BASE_URL", "http://localhost:5173")
	cfg.App.AllowedOrigin = getEnv("ALLOWED_ORIGIN", "http://localhost:5173")

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	if cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Postgres.Port = getEnv("DB_PORT", "5432")
	cfg.Postgres.User = os.Getenv("DB_USER")
	if cfg.Postgres.User == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	if cfg.Postgres.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	if cfg.Postgres.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	cfg.Gateway.StoreID = os.Getenv("STORE_ID")
	if cfg.Gateway.StoreID == "" {
		return nil, fmt.Errorf("STORE_ID is required")
	}
	cfg.Gateway.StorePassword = os.Getenv("STORE_PASS")
	if cfg.Gateway.StorePassword == "" {
		return nil, fmt.Errorf("STORE_PASS is required")
	}
	live, err := strconv.ParseBool(getEnv("SSLCZ_LIVE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSLCZ_LIVE: %w", err)
	}
	cfg.Gateway.Live = live
	cfg.Gateway.Currency = getEnv("CURRENCY", "BDT")

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.Auth.TokenTTL = time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
