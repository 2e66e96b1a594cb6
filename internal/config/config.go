package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL   string
	WSBaseURL    string
	DiagAddr     string
	StoragePath  string
	SamplePeriod time.Duration
	FramePeriod  time.Duration
	PollPeriod   time.Duration
}

// Load reads configuration from the environment, after merging a local .env
// file if one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:8080/api/users"),
		WSBaseURL:    getEnv("WS_BASE_URL", "ws://localhost:8001/ws"),
		DiagAddr:     getEnv("DIAG_ADDR", ":9091"),
		StoragePath:  getEnv("STORAGE_PATH", ".pongclient/state.json"),
		SamplePeriod: getEnvMillis("SAMPLE_PERIOD_MS", 16),
		FramePeriod:  getEnvMillis("FRAME_PERIOD_MS", 16),
		PollPeriod:   getEnvMillis("POLL_PERIOD_MS", 10000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvMillis(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return time.Duration(i) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}
