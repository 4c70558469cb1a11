package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configurable server parameters.
type Config struct {
	WSPort      int    `json:"ws_port"`
	DatabaseURL string `json:"database_url"`
	// AuthBaseURL enables bearer JWT checks on the HTTP API when set.
	AuthBaseURL string `json:"auth_base_url"`
	LogLevel    string `json:"log_level"`

	// ApproximateUnmodeled makes the engine skip unmodeled joker effects
	// instead of failing the evaluation.
	ApproximateUnmodeled bool `json:"approximate_unmodeled"`

	MaxMessageSize int `json:"max_message_size"`
	SnapshotBuffer int `json:"snapshot_buffer"`
	StoreTimeoutMS int `json:"store_timeout_ms"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		WSPort:         8080,
		LogLevel:       "info",
		MaxMessageSize: 1 << 20,
		SnapshotBuffer: 16,
		StoreTimeoutMS: 2000,
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config.json", "tag", "config", "error", err)
		}
	}

	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthBaseURL, "AUTH_BASE_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideBool(&cfg.ApproximateUnmodeled, "APPROXIMATE_UNMODELED")
	overrideInt(&cfg.MaxMessageSize, "MAX_MESSAGE_SIZE")
	overrideInt(&cfg.SnapshotBuffer, "SNAPSHOT_BUFFER")
	overrideInt(&cfg.StoreTimeoutMS, "STORE_TIMEOUT_MS")

	return cfg
}

// Level maps LogLevel to a slog level; unknown names fall back to Info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StoreTimeout is the per-write deadline for storage calls.
func (c *Config) StoreTimeout() time.Duration {
	return time.Duration(c.StoreTimeoutMS) * time.Millisecond
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			slog.Warn("invalid env value", "tag", "config", "key", envKey, "value", val)
		}
	}
}
