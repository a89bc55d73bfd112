package config

import (
	"os"
	"strings"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/logger"
)

type Config struct {
	HTTPAddr      string
	TelegramToken string
	AI            AIConfig
	DB            DBConfig
	Redis         RedisConfig
	Logger        LoggerConfig
}

type AIConfig struct {
	GeminiAPIKey string
	OpenAIAPIKey string
	Timeout      time.Duration
}

// Enabled reports whether any narrative rewrite provider is
// configured. Resolved once at startup; the insight path never probes
// the environment itself.
func (c AIConfig) Enabled() bool {
	return c.GeminiAPIKey != "" || c.OpenAIAPIKey != ""
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host string
	Port string
}

// Enabled reports whether bot conversation state should live in Redis
// instead of process memory.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseTimeout(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func Load() (*Config, error) {
	return &Config{
		HTTPAddr:      getEnvOrDefault("HTTP_ADDR", ":8080"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			Timeout:      parseTimeout(os.Getenv("AI_TIMEOUT"), 10*time.Second),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "vitals_tracker"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
