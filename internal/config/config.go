package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	RegistryURL string // tax-id registry base URL
	CheckoutURL string // external PRO checkout link
}

// Load reads configuration from the environment with sensible defaults.
// An empty DATABASE_DSN means the backing store is not configured; the
// application then boots in setup mode instead of crashing.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		Env:         getEnv("APP_ENV", "development"),
		RegistryURL: getEnv("REGISTRY_BASE_URL", "https://receitaws.com.br"),
		CheckoutURL: getEnv("CHECKOUT_URL", "https://pay.hotmart.com/orcapro-pro"),
	}
}

// Configured reports whether a backing store DSN was provided.
func (c Config) Configured() bool { return c.DatabaseDSN != "" }

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with a default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
