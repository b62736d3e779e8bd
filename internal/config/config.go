package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration from environment variables.
type Config struct {
	Port         int
	FeedURL      string
	FeedTTL      time.Duration // max snapshot age before a refresh
	FetchTimeout time.Duration // bound on one upstream fetch
	ModesFile    string        // optional modes.yml; empty = built-in modes
}

// Load reads configuration from the environment (and a .env file when
// present) with defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         envInt("NEXTTRAIN_PORT", 8080),
		FeedURL:      envStr("NEXTTRAIN_FEED_URL", "https://gtfsrt.api.translink.com.au/api/realtime/SEQ/TripUpdates"),
		FeedTTL:      envDur("NEXTTRAIN_FEED_TTL", 15*time.Second),
		FetchTimeout: envDur("NEXTTRAIN_FETCH_TIMEOUT", 20*time.Second),
		ModesFile:    envStr("NEXTTRAIN_MODES_FILE", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
