package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AmadeusConfig struct {
	APIKey   string
	Secret   string
	Hostname string // "test" for sandbox, "production" for live
	Currency string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type Config struct {
	AppEnv                  string
	AppPort                 string
	AgentEmail              string
	Amadeus                 AmadeusConfig
	Redis                   RedisConfig
	Postgres                PostgresConfig
	Observability           ObservabilityConfig
	SearchCacheTTLMinutes   int
	CalendarCacheTTLMinutes int
}

func Load() (*Config, error) {
	var errs []error

	// Missing .env is fine when the process env is already populated
	_ = godotenv.Load()

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	amadeusKey := mustEnv("AMADEUS_API_KEY", &errs)
	amadeusSecret := mustEnv("AMADEUS_API_SECRET", &errs)

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgPort := mustEnv("POSTGRES_PORT", &errs)
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDBName := mustEnv("POSTGRES_DB", &errs)

	searchTTL := intEnvOr("SEARCH_CACHE_TTL_MINUTES", 10, &errs)
	calendarTTL := intEnvOr("CALENDAR_CACHE_TTL_MINUTES", 30, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:     appEnv,
		AppPort:    appPort,
		AgentEmail: envOr("AGENT_EMAIL", "info@flight380.co.uk"),
		Amadeus: AmadeusConfig{
			APIKey:   amadeusKey,
			Secret:   amadeusSecret,
			Hostname: envOr("AMADEUS_HOSTNAME", "test"),
			Currency: envOr("DEFAULT_CURRENCY", "GBP"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     envOr("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Postgres: PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDBName,
			SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  envOr("OTEL_SERVICE_NAME", "flight380-api"),
		},
		SearchCacheTTLMinutes:   searchTTL,
		CalendarCacheTTLMinutes: calendarTTL,
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func intEnvOr(key string, fallback int, errs *[]error) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return fallback
	}
	return parsed
}
