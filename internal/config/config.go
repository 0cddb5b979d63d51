// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// HubSpot CRM
	HubSpotBaseURL string
	HubSpotToken   string

	// BigQuery warehouse
	BigQueryProject string
	BigQueryDataset string
	BigQueryTable   string

	// Supabase (countdowns, comparables, offer letter storage)
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	StorageBucket      string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	// MaxConcurrentRenders caps how many offer letters build at once.
	MaxConcurrentRenders int

	// Cache
	CacheTTL time.Duration

	// Rate limiting (requests per minute per IP on the CRM proxy)
	CRMRateLimit int

	// Observability
	OTLPEndpoint string
	CompanyName  string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HubSpotBaseURL: getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"),
		HubSpotToken:   getEnv("HUBSPOT_TOKEN", ""),

		BigQueryProject: getEnv("BIGQUERY_PROJECT", ""),
		BigQueryDataset: getEnv("BIGQUERY_DATASET", "hesh"),
		BigQueryTable:   getEnv("BIGQUERY_TABLE", "property_costs"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		StorageBucket:      getEnv("STORAGE_BUCKET", "ofertas"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 12*time.Second),

		MaxRetries:           getEnvInt("MAX_RETRIES", 3),
		InitialBackoff:       getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrentRenders: getEnvInt("MAX_CONCURRENT_RENDERS", 8),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		CRMRateLimit: getEnvInt("CRM_RATE_LIMIT", 30),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		CompanyName:  getEnv("COMPANY_NAME", "Habi"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
