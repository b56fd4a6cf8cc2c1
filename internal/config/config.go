package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mcc-reference/internal/models"
)

// ErrInvalidConfiguration is wrapped by every configuration validation
// failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Dataset source drivers.
const (
	DriverEmbedded = "embedded"
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Security SecurityConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins []string
}

// DatasetConfig holds the resolved settings the collection consumes. The
// mechanism for setting them (env vars here) is deliberately separate from
// the values: the collection only ever sees a DatasetConfig instance.
type DatasetConfig struct {
	// Driver selects the dataset source: embedded, json, sqlite, postgres.
	Driver string
	// Path is the opaque location handed to the source: a file path for
	// json/sqlite, a DSN for postgres, unused for embedded.
	Path string
	// DefaultDescriptionSource is the source tried first when resolving a
	// code description without an explicit source.
	DefaultDescriptionSource string
	// CacheEnabled reuses a successful load until an explicit reload. When
	// disabled, every top-level query re-triggers a full load.
	CacheEnabled bool
	// IncludeReservedRanges controls whether reserved ISO ranges are listed
	// as eligible segments. Advisory: membership queries always consider
	// every loaded range.
	IncludeReservedRanges bool
}

type SecurityConfig struct {
	RateLimitPerSecond int
	RateLimitBurst     int
}

func Load() *Config {
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			Environment:  getEnv("APP_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Dataset: DatasetConfig{
			Driver:                   getEnv("MCC_DATASET_DRIVER", DriverEmbedded),
			Path:                     getEnv("MCC_DATASET_PATH", ""),
			DefaultDescriptionSource: getEnv("MCC_DEFAULT_DESCRIPTION_SOURCE", string(models.SourceISO)),
			CacheEnabled:             getBoolEnv("MCC_CACHE_ENABLED", true),
			IncludeReservedRanges:    getBoolEnv("MCC_INCLUDE_RESERVED_RANGES", false),
		},
		Security: SecurityConfig{
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 25),
			RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 50),
		},
	}

	config.Server.CORSAllowOrigins = loadCORSAllowOrigins()

	return config
}

// Validate checks the resolved dataset configuration. Fails with
// ErrInvalidConfiguration when the default description source is not one of
// the recognized identifiers, the driver is unknown, or a driver that needs
// a location has a blank path.
func (c *DatasetConfig) Validate() error {
	if !models.IsValidDescriptionSource(c.DefaultDescriptionSource) {
		return fmt.Errorf("%w: unrecognized description source %q", ErrInvalidConfiguration, c.DefaultDescriptionSource)
	}

	switch c.Driver {
	case DriverEmbedded:
		return nil
	case DriverJSON, DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("%w: dataset path is required for driver %q", ErrInvalidConfiguration, c.Driver)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown dataset driver %q", ErrInvalidConfiguration, c.Driver)
	}
}

// DefaultSource returns the configured default description source as a
// typed value.
func (c *DatasetConfig) DefaultSource() models.DescriptionSource {
	return models.DescriptionSource(c.DefaultDescriptionSource)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")
	if corsOrigins == "" {
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
