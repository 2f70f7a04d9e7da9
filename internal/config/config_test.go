package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/cohouse/internal/calculator"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("Port = %d, Addr = %s", cfg.Port, cfg.Addr())
	}
	if cfg.RemainderPolicy != calculator.PolicyTrailing {
		t.Errorf("RemainderPolicy = %q, want trailing", cfg.RemainderPolicy)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v", cfg.TokenDuration)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Errorf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
	if !cfg.MetricsEnabled {
		t.Error("metrics should default to enabled")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("REMAINDER_POLICY", "platform")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.RemainderPolicy != calculator.PolicyPlatform {
		t.Errorf("RemainderPolicy = %q, want platform", cfg.RemainderPolicy)
	}
	if strings.Join(cfg.Kafka.Brokers, "|") != "k1:9092|k2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.MetricsEnabled {
		t.Error("METRICS_ENABLED=false was ignored")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET"},
		{"bad port", map[string]string{"JWT_SECRET": "x", "PORT": "eighty"}, "PORT"},
		{"bad policy", map[string]string{"JWT_SECRET": "x", "REMAINDER_POLICY": "round"}, "REMAINDER_POLICY"},
		{"bad duration", map[string]string{"JWT_SECRET": "x", "TOKEN_DURATION": "1 day"}, "TOKEN_DURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JWT_SECRET=from-file\nDB_PATH=/tmp/x.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Already-set variables win over the file.
	t.Setenv("DB_PATH", "/var/lib/cohouse.db")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Errorf("JWTSecret = %q, want from-file", cfg.JWTSecret)
	}
	if cfg.DBPath != "/var/lib/cohouse.db" {
		t.Errorf("DBPath = %q, env should win over file", cfg.DBPath)
	}
}
