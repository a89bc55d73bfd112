package config

import (
	"os"
	"testing"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/logger"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.DB.Host != "localhost" {
		t.Errorf("DB.Host = %s, want localhost", cfg.DB.Host)
	}
	if cfg.DB.DBName != "vitals_tracker" {
		t.Errorf("DB.DBName = %s, want vitals_tracker", cfg.DB.DBName)
	}
	if cfg.AI.Enabled() {
		t.Error("AI.Enabled() = true, want false with no keys")
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("AI.Timeout = %v, want 10s", cfg.AI.Timeout)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = true, want false with no host")
	}
	if cfg.Logger.Level != logger.LevelInfo {
		t.Errorf("Logger.Level = %v, want info", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Logger.Format = %s, want json", cfg.Logger.Format)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9999")
	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("AI_TIMEOUT", "3s")
	os.Setenv("REDIS_HOST", "redis.internal")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "text")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %s, want :9999", cfg.HTTPAddr)
	}
	if !cfg.AI.Enabled() {
		t.Error("AI.Enabled() = false, want true with Gemini key")
	}
	if cfg.AI.Timeout != 3*time.Second {
		t.Errorf("AI.Timeout = %v, want 3s", cfg.AI.Timeout)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis.Enabled() = false, want true with host set")
	}
	if cfg.Redis.Port != "6379" {
		t.Errorf("Redis.Port = %s, want default 6379", cfg.Redis.Port)
	}
	if cfg.Logger.Level != logger.LevelDebug {
		t.Errorf("Logger.Level = %v, want debug", cfg.Logger.Level)
	}
	if cfg.Logger.Format != "text" {
		t.Errorf("Logger.Format = %s, want text", cfg.Logger.Format)
	}
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("AI_TIMEOUT", "soonish")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("AI.Timeout = %v, want 10s fallback", cfg.AI.Timeout)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"debug":    logger.LevelDebug,
		"INFO":     logger.LevelInfo,
		"warn":     logger.LevelWarn,
		"warning":  logger.LevelWarn,
		"error":    logger.LevelError,
		"verbose?": logger.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
