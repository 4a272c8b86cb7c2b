package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret  string // Required: HMAC secret for session tokens
	InviteCode string // Invite code required to register (default: STUCCO2024)

	Issuer              string        // Issuer claim for tokens and the TOTP enrolment label
	DatabaseFile        string        // Path to SQLite database file (default: ./portal.db)
	SessionTTL          time.Duration // Full session token lifetime (default: 7 days)
	PendingTTL          time.Duration // Pending two-factor token lifetime (default: 5 minutes)
	GeocoderBaseURL     string        // Nominatim-compatible geocoding endpoint
	GeocoderCacheSize   int           // Geocode cache entries (default: 256)
	GeocoderCacheTTL    time.Duration // Geocode cache entry lifetime (default: 24h)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("PORTAL_JWT_SECRET"),
		InviteCode:          getEnvOrDefault("PORTAL_INVITE_CODE", "STUCCO2024"),
		Issuer:              getEnvOrDefault("PORTAL_ISSUER", "Stucco Rite Inc"),
		DatabaseFile:        getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		SessionTTL:          getEnvDurationOrDefault("PORTAL_SESSION_TTL", 7*24*time.Hour),
		PendingTTL:          getEnvDurationOrDefault("PORTAL_PENDING_TTL", 5*time.Minute),
		GeocoderBaseURL:     getEnvOrDefault("PORTAL_GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		GeocoderCacheSize:   getEnvIntOrDefault("PORTAL_GEOCODER_CACHE_SIZE", 256),
		GeocoderCacheTTL:    getEnvDurationOrDefault("PORTAL_GEOCODER_CACHE_TTL", 24*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
