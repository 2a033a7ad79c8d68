package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "0.0.0.0"
  port: 5002
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
seed:
  devices_file: "configs/devices.yaml"
mqtt:
  enabled: false
  host: "localhost"
  port: 1883
security:
  jwt:
    secret: "test-secret-key-at-least-32-chars!"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5002 {
		t.Errorf("Server.Port = %d, want 5002", cfg.Server.Port)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}

	if cfg.MQTT.Host != "localhost" {
		t.Errorf("MQTT.Host = %q, want %q", cfg.MQTT.Host, "localhost")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	// validJWTSecret meets the 32-character minimum requirement
	validJWTSecret := "test-secret-key-at-least-32-chars!"

	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 5002},
			Database: DatabaseConfig{Path: "/data/hearth.db"},
			Seed:     SeedConfig{DevicesFile: "configs/devices.yaml"},
			MQTT:     MQTTConfig{QoS: 1},
			Security: SecurityConfig{JWT: JWTConfig{Secret: validJWTSecret}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "missing devices file",
			mutate:  func(c *Config) { c.Seed.DevicesFile = "" },
			wantErr: true,
		},
		{
			name: "invalid QoS when mqtt enabled",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.QoS = 3
			},
			wantErr: true,
		},
		{
			name:    "invalid QoS ignored when mqtt disabled",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: false,
		},
		{
			name:    "invalid port low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing JWT secret",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "" },
			wantErr: true,
		},
		{
			name:    "JWT secret too short",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "short" },
			wantErr: true,
		},
		{
			name: "influxdb enabled without token",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.URL = "http://localhost:8086"
			},
			wantErr: true,
		},
		{
			name: "energy interval too small",
			mutate: func(c *Config) {
				c.Energy.Enabled = true
				c.Energy.UpdateInterval = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 45,
				Idle:  60,
			},
		},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}

	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}

	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("HEARTH_DATABASE_PATH", "/custom/path.db")
	t.Setenv("HEARTH_MQTT_HOST", "mqtt.example.com")
	t.Setenv("HEARTH_MQTT_USERNAME", "testuser")
	t.Setenv("HEARTH_MQTT_PASSWORD", "testpass")
	t.Setenv("HEARTH_SERVER_HOST", "192.168.1.1")
	t.Setenv("HEARTH_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("HEARTH_JWT_SECRET", "jwt-secret")
	t.Setenv("HEARTH_ADMIN_PASSWORD", "hunter2hunter2")

	applyEnvOverrides(cfg)

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}

	if cfg.MQTT.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Host = %q, want %q", cfg.MQTT.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Username != "testuser" {
		t.Errorf("MQTT.Username = %q, want %q", cfg.MQTT.Username, "testuser")
	}

	if cfg.MQTT.Password != "testpass" {
		t.Errorf("MQTT.Password = %q, want %q", cfg.MQTT.Password, "testpass")
	}

	if cfg.Server.Host != "192.168.1.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "192.168.1.1")
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}

	if cfg.Security.JWT.Secret != "jwt-secret" {
		t.Errorf("Security.JWT.Secret = %q, want %q", cfg.Security.JWT.Secret, "jwt-secret")
	}

	if cfg.Security.AdminPassword != "hunter2hunter2" {
		t.Errorf("Security.AdminPassword = %q, want %q", cfg.Security.AdminPassword, "hunter2hunter2")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path == "" {
		t.Error("defaultConfig should have non-empty Database.Path")
	}

	if cfg.MQTT.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Port = %d, want 1883", cfg.MQTT.Port)
	}

	if cfg.Server.Port != 5002 {
		t.Errorf("defaultConfig Server.Port = %d, want 5002", cfg.Server.Port)
	}

	if cfg.WebSocket.Path != "/ws" {
		t.Errorf("defaultConfig WebSocket.Path = %q, want %q", cfg.WebSocket.Path, "/ws")
	}
}
