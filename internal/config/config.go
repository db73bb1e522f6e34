package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by ANCHORGRAPH_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("ANCHORGRAPH_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the environment may already be set.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// StoreBackend returns where the corpus lives: file or postgres.
// Defaults to "file" if not set.
func StoreBackend() string {
	b := os.Getenv("STORE_BACKEND")
	if b == "" {
		return BackendFile
	}
	return b
}

func AnchorsPath() string {
	return getOr("ANCHORS_PATH", "data/anchors.json")
}

func ReadingsPath() string {
	return getOr("READINGS_PATH", "data/readings.json")
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	return getOr("LOG_LEVEL", "info")
}

// MajorCascadeThreshold is the affected-reading count at which a cascade
// report asks for review. Defaults to 5.
func MajorCascadeThreshold() int {
	n, err := strconv.Atoi(os.Getenv("MAJOR_CASCADE_THRESHOLD"))
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

// APIToken is the bearer token required on /v1 routes. Empty disables auth.
func APIToken() string {
	return os.Getenv("API_TOKEN")
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
