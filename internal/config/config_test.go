package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{
		"STORE_BACKEND", "ANCHORS_PATH", "READINGS_PATH", "SERVER_PORT",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL", "MAJOR_CASCADE_THRESHOLD", "API_TOKEN",
	} {
		t.Setenv(key, "")
	}

	if got := StoreBackend(); got != BackendFile {
		t.Errorf("StoreBackend() = %q, want %q", got, BackendFile)
	}
	if got := AnchorsPath(); got != "data/anchors.json" {
		t.Errorf("AnchorsPath() = %q", got)
	}
	if got := ReadingsPath(); got != "data/readings.json" {
		t.Errorf("ReadingsPath() = %q", got)
	}
	if got := ServerAddr(); got != ":8080" {
		t.Errorf("ServerAddr() = %q", got)
	}
	if got := RateLimitRPS(); got != 100 {
		t.Errorf("RateLimitRPS() = %v", got)
	}
	if got := RateLimitBurst(); got != 20 {
		t.Errorf("RateLimitBurst() = %v", got)
	}
	if got := LogLevel(); got != "info" {
		t.Errorf("LogLevel() = %q", got)
	}
	if got := MajorCascadeThreshold(); got != 5 {
		t.Errorf("MajorCascadeThreshold() = %d", got)
	}
	if got := APIToken(); got != "" {
		t.Errorf("APIToken() = %q", got)
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")
	t.Setenv("RATE_LIMIT_RPS", "-3")
	t.Setenv("MAJOR_CASCADE_THRESHOLD", "0")

	if got := ServerPort(); got != 8080 {
		t.Errorf("ServerPort() = %d", got)
	}
	if got := RateLimitRPS(); got != 100 {
		t.Errorf("RateLimitRPS() = %v", got)
	}
	if got := MajorCascadeThreshold(); got != 5 {
		t.Errorf("MajorCascadeThreshold() = %d", got)
	}
}

func TestLoadReadsEnvFileAndSecret(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("STORE_BACKEND=postgres\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envFile+".secret", []byte("API_TOKEN=s3cret\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ANCHORGRAPH_ENV", envFile)
	// godotenv never overrides variables that are already set, so clear them
	// through t.Setenv first to get them restored after the test.
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("API_TOKEN", "")
	os.Unsetenv("STORE_BACKEND")
	os.Unsetenv("API_TOKEN")

	if err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := StoreBackend(); got != BackendPostgres {
		t.Errorf("StoreBackend() = %q, want %q", got, BackendPostgres)
	}
	if got := APIToken(); got != "s3cret" {
		t.Errorf("APIToken() = %q", got)
	}
}
