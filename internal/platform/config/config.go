package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	StorageMemory = "memory"
	StoragePgSQL  = "pgsql"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	// Tenant configuration
	TenantID           string
	StorageBackend     string
	ConfigOverridePath string

	// Approval queue
	ApprovalRefreshInterval time.Duration

	// HTTP surface
	RateLimit          string
	CORSAllowedOrigins []string

	// Observability
	PosthogAPIKey  string
	TracingEnabled bool
	TracingOutput  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "shopdesk")
	viper.SetDefault("TENANT_ID", "default")
	viper.SetDefault("STORAGE_BACKEND", StorageMemory)
	viper.SetDefault("CONFIG_OVERRIDE_PATH", "")
	viper.SetDefault("APPROVAL_REFRESH_INTERVAL", "30s")
	viper.SetDefault("RATE_LIMIT", "20-S")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_OUTPUT", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.TenantID = viper.GetString("TENANT_ID")
	cfg.StorageBackend = strings.ToLower(viper.GetString("STORAGE_BACKEND"))
	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePgSQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORAGE_BACKEND=%s requires PGSQL_URL", StoragePgSQL)
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q (want %s or %s)", cfg.StorageBackend, StorageMemory, StoragePgSQL)
	}
	cfg.ConfigOverridePath = viper.GetString("CONFIG_OVERRIDE_PATH")

	refreshStr := viper.GetString("APPROVAL_REFRESH_INTERVAL")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil || refresh < 0 {
		refresh = 30 * time.Second
		log.Printf("Warning: Invalid value for APPROVAL_REFRESH_INTERVAL ('%s'). Defaulting to %s.\n", refreshStr, refresh)
	}
	cfg.ApprovalRefreshInterval = refresh

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.TracingEnabled = viper.GetBool("TRACING_ENABLED")
	cfg.TracingOutput = viper.GetString("TRACING_OUTPUT")

	return cfg, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
