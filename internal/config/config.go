package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backends soportados para el record store.
const (
	BackendAirtable = "airtable"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort     string `env:"HTTP_PORT" envDefault:"8080"`
	StoreBackend string `env:"STORE_BACKEND" envDefault:"airtable"`
	SiteURL      string `env:"SITE_URL" envDefault:"https://ratemyrep.com"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	AirtableAPIKey         string `env:"AIRTABLE_API_KEY"`
	AirtableBaseID         string `env:"AIRTABLE_BASE_ID"`
	AirtableBaseURL        string `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
	AirtableOfficialsTable string `env:"AIRTABLE_OFFICIALS_TABLE" envDefault:"Officials"`
	AirtableRatingsTable   string `env:"AIRTABLE_RATINGS_TABLE" envDefault:"Ratings"`
	AirtableStaffTable     string `env:"AIRTABLE_STAFF_TABLE" envDefault:"Staff"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
	AdminEmail          string `env:"ADMIN_EMAIL"`
	AdminPasswordHash   string `env:"ADMIN_PASSWORD_HASH"`

	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitMax           int `env:"RATE_LIMIT_MAX" envDefault:"30"`
	SessionTTLHours        int `env:"SESSION_TTL_HOURS" envDefault:"720"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate exige las variables que el backend elegido necesita.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendAirtable:
		if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
			return fmt.Errorf("%w: AIRTABLE_API_KEY and AIRTABLE_BASE_ID are required for the airtable backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown STORE_BACKEND %q", ErrInvalidConfig, c.StoreBackend)
	}
	if c.RateLimitMax < 0 || c.RateLimitWindowSeconds < 0 {
		return fmt.Errorf("%w: rate limit values must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLMinutes) * time.Minute
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// AdminEnabled indica si hay credenciales para el login de administracion.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminEmail != "" && c.AdminPasswordHash != ""
}
