package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB          DBConfig
	Server      ServerConfig
	Seeder      SeederConfig
	Client      ClientConfig
	Geocode     GeocodeConfig
	Events      EventsConfig
	Geolocation GeolocationConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		if c.Name != "" && c.Name != defaultDBName {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds city store server settings
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// SeederConfig holds settings for fixture import
type SeederConfig struct {
	Fixture   string
	BatchSize int
}

// ClientConfig points the CLI at a running city store
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeocodeConfig configures the reverse-geocoding client
type GeocodeConfig struct {
	BaseURL       string
	RatePerSecond float64
	CacheTTL      time.Duration
}

// EventsConfig configures city event publishing. An empty URL disables it.
type EventsConfig struct {
	NATSURL string
	Subject string
}

// Enabled reports whether events should be published
func (c EventsConfig) Enabled() bool {
	return c.NATSURL != ""
}

// GeolocationConfig configures the terminal client's device position source
type GeolocationConfig struct {
	Timeout   time.Duration
	GeoIPPath string
	Address   string
}

const defaultDBName = "worldwise"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "worldwise"),
			Password: getEnv("DB_PASSWORD", "worldwise_password"),
			Name:     getEnv("DB_NAME", defaultDBName),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8000"),
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),
		},
		Seeder: SeederConfig{
			Fixture:   getEnv("SEEDER_FIXTURE", "data/cities.json"),
			BatchSize: getEnvAsInt("SEEDER_BATCH_SIZE", 500),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimRight(getEnv("CITIES_BASE_URL", "http://localhost:8000"), "/"),
			Timeout: getEnvAsDuration("CLIENT_TIMEOUT", 10*time.Second),
		},
		Geocode: GeocodeConfig{
			BaseURL:       getEnv("GEOCODE_BASE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client"),
			RatePerSecond: getEnvAsFloat("GEOCODE_RATE_PER_SEC", 1),
			CacheTTL:      getEnvAsDuration("GEOCODE_CACHE_TTL", time.Hour),
		},
		Events: EventsConfig{
			NATSURL: os.Getenv("NATS_URL"),
			Subject: getEnv("NATS_SUBJECT_PREFIX", "worldwise.cities"),
		},
		Geolocation: GeolocationConfig{
			Timeout:   getEnvAsDuration("GEOLOCATION_TIMEOUT", 0),
			GeoIPPath: getEnv("GEOIP_DB_PATH", "data/GeoLite2-City.mmdb"),
			Address:   os.Getenv("GEOIP_ADDRESS"),
		},
	}

	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return nil, fmt.Errorf("invalid APP_PORT %q: %w", config.Server.Port, err)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("5s", "1h")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
