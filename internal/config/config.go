// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/cohouse/internal/calculator"
)

// Config aggregates application configuration values.
type Config struct {
	Port            int
	DBPath          string
	JWTSecret       string
	TokenDuration   time.Duration
	RemainderPolicy calculator.RemainderPolicy
	MetricsEnabled  bool
	LogLevel        string
	ShutdownTimeout time.Duration
	Kafka           KafkaConfig
}

// KafkaConfig describes the event broker. Publishing is disabled when
// Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const (
	defaultPort            = 8080
	defaultDBPath          = "./data/cohouse.db"
	defaultPolicy          = string(calculator.PolicyTrailing)
	defaultTopic           = "cohouse.events"
	defaultTokenDuration   = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
)

// Load reads configuration from environment variables, applying defaults.
// Values from envFiles (if they exist) fill in variables that aren't already set.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	port, err := parseIntWithDefault("PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	metrics, err := parseBoolWithDefault("METRICS_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	tokenDuration, err := parseDurationWithDefault("TOKEN_DURATION", defaultTokenDuration)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := parseDurationWithDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	policy, err := calculator.ParsePolicy(valueOrDefault("REMAINDER_POLICY", defaultPolicy))
	if err != nil {
		return Config{}, fmt.Errorf("REMAINDER_POLICY: %w", err)
	}

	cfg := Config{
		Port:            port,
		DBPath:          valueOrDefault("DB_PATH", defaultDBPath),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenDuration:   tokenDuration,
		RemainderPolicy: policy,
		MetricsEnabled:  metrics,
		LogLevel:        valueOrDefault("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdown,
		Kafka: KafkaConfig{
			Brokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
			Topic:   valueOrDefault("KAFKA_TOPIC", defaultTopic),
		},
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func valueOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return v, nil
}

func parseBoolWithDefault(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return v, nil
}

func parseDurationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return v, nil
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
