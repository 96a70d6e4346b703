package config

import (
	"fmt"
	"regexp"
	"time"

	pkgconfig "github.com/comicverse/hub/pkg/config"
	"github.com/comicverse/hub/pkg/database"
	"github.com/comicverse/hub/pkg/tracing"
)

// State backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort           int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Profile namespaces every persisted key.
	Profile string `env:"STOREFRONT_PROFILE" envDefault:"default"`

	// Catalog fixture; empty uses the embedded one.
	CatalogPath string `env:"CATALOG_PATH"`

	// State substrate
	StateBackend string `env:"STATE_BACKEND" envDefault:"file"`
	StateDir     string `env:"STATE_DIR" envDefault:"./data"`
	StateTTL     int    `env:"STATE_TTL_HOURS" envDefault:"0"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"comicverse"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"comicverse"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"comicverse"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Kafka; empty disables badge events.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Storefront behaviour
	SearchDebounceMS int     `env:"SEARCH_DEBOUNCE_MS" envDefault:"300"`
	TaxRate          float64 `env:"TAX_RATE" envDefault:"0.08"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadFrom(cfg, environ); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !profilePattern.MatchString(c.Profile) {
		return fmt.Errorf("invalid STOREFRONT_PROFILE %q: use letters, digits, '-' or '_'", c.Profile)
	}
	switch c.StateBackend {
	case BackendFile:
		if c.StateDir == "" {
			return fmt.Errorf("STATE_DIR is required for the file backend")
		}
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown STATE_BACKEND %q", c.StateBackend)
	}
	if c.StateTTL < 0 {
		return fmt.Errorf("STATE_TTL_HOURS must not be negative")
	}
	if c.SearchDebounceMS < 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE_MS must not be negative")
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		return fmt.Errorf("TAX_RATE must be between 0.0 and 1.0, got %v", c.TaxRate)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %v", c.OTELSampleRate)
	}
	return nil
}

// SearchDebounce returns the search quiet period.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

// StateExpiry returns how long persisted state lives; zero means forever.
func (c *Config) StateExpiry() time.Duration {
	return time.Duration(c.StateTTL) * time.Hour
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{Addr: c.RedisAddr, Password: c.RedisPass, DB: c.RedisDB}
}

// Postgres returns the PostgreSQL connection settings.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPassword
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return pg
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing(service string) tracing.Config {
	tc := tracing.DefaultConfig(service)
	tc.Environment = c.Environment
	tc.Enabled = c.OTELEnabled
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	return tc
}
