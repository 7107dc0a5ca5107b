// Package config provides configuration management for the rate service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Carrier  CarrierConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	LogLevel       string
	LogPretty      bool
}

// CarrierConfig holds carrier API configuration.
type CarrierConfig struct {
	ClientID      string
	ClientSecret  string
	AccountNumber string
	BaseURL       string
	TestMode      bool
	// MarkupPercent is applied to every quoted rate, e.g. 10 for +10%.
	MarkupPercent float64
	// UseIntelligentPacking repacks dimensioned items into catalog boxes
	// before rating.
	UseIntelligentPacking bool
	// CustomBoxesEnabled lets the packer invent a made-to-measure box for
	// items that fit no catalog box, instead of leaving them unpacked.
	CustomBoxesEnabled bool
	// CustomBoxMarginIn is the padding added per dimension of a custom box.
	CustomBoxMarginIn float64
	// CustomBoxTareLbs is the tare weight assumed for a custom box.
	CustomBoxTareLbs float64
	// EnabledServices narrows quoting to these service codes; empty means all.
	EnabledServices []string
	// RateTypes requested from the carrier, e.g. LIST and ACCOUNT.
	RateTypes []string
	// SmartPostHubs maps destination state to the carrier hub ID.
	SmartPostHubs map[string]string
	// RequestTimeout bounds a single carrier HTTP call.
	RequestTimeout time.Duration
	// Retry policy for transient carrier failures.
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration
	// CircuitBreaker thresholds for the carrier endpoint.
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerCoolDown         time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled   bool
	APIKeys   map[string]bool
	JWTSecret string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTLDays  int
	Enabled      bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogPretty:      getEnvBool("LOG_PRETTY", false),
		},
		Carrier: CarrierConfig{
			ClientID:                       getEnv("FEDEX_CLIENT_ID", ""),
			ClientSecret:                   getEnv("FEDEX_CLIENT_SECRET", ""),
			AccountNumber:                  getEnv("FEDEX_ACCOUNT_NUMBER", ""),
			BaseURL:                        getEnv("FEDEX_BASE_URL", ""),
			TestMode:                       getEnvBool("FEDEX_TEST_MODE", false),
			MarkupPercent:                  getEnvFloat("RATE_MARKUP_PERCENT", 0),
			UseIntelligentPacking:          getEnvBool("INTELLIGENT_PACKING", true),
			CustomBoxesEnabled:             getEnvBool("CUSTOM_BOXES_ENABLED", true),
			CustomBoxMarginIn:              getEnvFloat("CUSTOM_BOX_MARGIN_IN", 2),
			CustomBoxTareLbs:               getEnvFloat("CUSTOM_BOX_TARE_LBS", 1),
			EnabledServices:                parseStringSlice(os.Getenv("ENABLED_SERVICES")),
			RateTypes:                      parseStringSlice(os.Getenv("RATE_TYPES")),
			SmartPostHubs:                  parseKeyValueMap(os.Getenv("SMARTPOST_HUBS")),
			RequestTimeout:                 getEnvDuration("CARRIER_REQUEST_TIMEOUT", 15*time.Second),
			RetryMaxAttempts:               getEnvInt("CARRIER_RETRY_MAX_ATTEMPTS", 3),
			RetryBaseDelay:                 getEnvDuration("CARRIER_RETRY_BASE_DELAY", time.Second),
			RetryMaxDelay:                  getEnvDuration("CARRIER_RETRY_MAX_DELAY", 10*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerCoolDown:         getEnvDuration("CIRCUIT_BREAKER_COOLDOWN", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled:   getEnvBool("AUTH_ENABLED", false),
			APIKeys:   parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
		},
		Database: DatabaseConfig{
			URI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName: getEnv("MONGODB_DATABASE", "rate_service"),
			LogsTTLDays:  getEnvInt("MONGODB_LOGS_TTL_DAYS", 30),
			Enabled:      getEnvBool("MONGODB_ENABLED", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseStringSlice(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// parseKeyValueMap parses "CA=5531,NY=5552" style pairs.
func parseKeyValueMap(s string) map[string]string {
	if s == "" {
		return nil
	}
	pairs := strings.Split(s, ",")
	result := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found {
			continue
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			result[key] = value
		}
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
