package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("HEARTH_CONFIG")
	defer os.Setenv("HEARTH_CONFIG", originalEnv)

	os.Setenv("HEARTH_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingJWTSecret verifies config validation rejects a config
// without a JWT secret.
func TestRun_MissingJWTSecret(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
server:
  host: "127.0.0.1"
  port: 5002

database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
  wal_mode: true
  busy_timeout: 5

seed:
  devices_file: "configs/devices.yaml"

mqtt:
  enabled: false

influxdb:
  enabled: false

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("HEARTH_CONFIG")
	originalSecret := os.Getenv("HEARTH_JWT_SECRET")
	defer func() {
		os.Setenv("HEARTH_CONFIG", originalEnv)
		os.Setenv("HEARTH_JWT_SECRET", originalSecret)
	}()
	os.Setenv("HEARTH_CONFIG", configPath)
	os.Setenv("HEARTH_JWT_SECRET", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without a JWT secret")
	}
}

func TestGetConfigPath(t *testing.T) {
	originalEnv := os.Getenv("HEARTH_CONFIG")
	defer os.Setenv("HEARTH_CONFIG", originalEnv)

	os.Setenv("HEARTH_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
	}

	os.Setenv("HEARTH_CONFIG", "/etc/hearth/config.yaml")
	if got := getConfigPath(); got != "/etc/hearth/config.yaml" {
		t.Errorf("getConfigPath() = %q, want override", got)
	}
}
