package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	AppName      string
	AppVersion   string
	Port         string
	IsProduction bool
	LogLevel     string

	DatabaseURL   string
	RunMigrations bool

	ExchangeRateAPIURL string
	ExchangeRateAPIKey string
	DefaultCurrency    string

	// JWTSecret empty disables bearer auth; every request then runs as DevUserID.
	JWTSecret string
	JWTIssuer string
	DevUserID string

	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string

	// RedisAddr empty disables the hot rate cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// AuthEnabled reports whether bearer tokens are required.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_NAME", "Multi-Currency Invoice Analytics API")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_SERVER", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_DB", "invoice_db")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("EXCHANGE_RATE_API_URL", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "invoice-analytics")
	v.SetDefault("DEV_USER_ID", "local-dev")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.AutomaticEnv()

	cfg := &Config{
		AppName:            v.GetString("APP_NAME"),
		AppVersion:         v.GetString("APP_VERSION"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		ExchangeRateAPIURL: strings.TrimRight(v.GetString("EXCHANGE_RATE_API_URL"), "/"),
		ExchangeRateAPIKey: v.GetString("EXCHANGE_RATE_API_KEY"),
		DefaultCurrency:    strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY"))),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		DevUserID:          v.GetString("DEV_USER_ID"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = buildDatabaseURL(
			v.GetString("POSTGRES_USER"),
			v.GetString("POSTGRES_PASSWORD"),
			v.GetString("POSTGRES_SERVER"),
			v.GetString("POSTGRES_PORT"),
			v.GetString("POSTGRES_DB"),
		)
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT must not be empty")
	}
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a three-letter code, got %q", cfg.DefaultCurrency)
	}
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY not set. Rate lookups that miss the cache will fail.")
	}
	if cfg.JWTSecret == "" {
		log.Printf("Warning: JWT_SECRET not set. Authentication disabled; requests run as %q.\n", cfg.DevUserID)
	}

	return cfg, nil
}

func buildDatabaseURL(user, password, host, port, dbName string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   host + ":" + port,
		Path:   "/" + dbName,
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
