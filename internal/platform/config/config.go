package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken   string `validate:"required"`
	BotDebug   bool
	BotWorkers int `validate:"gte=1,lte=64"`

	DatabaseURL      string `validate:"required"`
	DatabasePassword string
	DBMaxOpenConns   int `validate:"gte=1"`

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	FormSessionTTL time.Duration `validate:"gt=0"`
	ReportLocation *time.Location `validate:"required"`

	HTTPAddr string `validate:"required"`
	LogLevel slog.Level
}

// Load reads the process environment, after merging in a .env file when one exists.
func Load() (*Config, error) {
	loadDotEnv()

	loc, err := time.LoadLocation(getEnv("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	cfg := &Config{
		BotToken:         getEnv("BOT_KEY", ""),
		BotDebug:         getEnvAsBool("BOT_DEBUG", false),
		BotWorkers:       getEnvAsInt("BOT_WORKERS", 4),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		DBMaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		FormSessionTTL:   getEnvAsDuration("FORM_SESSION_TTL", 30*time.Minute),
		ReportLocation:   loc,
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		LogLevel:         parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadDatabase reads only the settings needed to reach the database, for tools
// that do not talk to Telegram.
func LoadDatabase() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		DBMaxOpenConns:   getEnvAsInt("DB_MAX_OPEN_CONNS", 2),
	}
	if err := validator.New().Var(cfg.DatabaseURL, "required"); err != nil {
		return nil, fmt.Errorf("invalid configuration: DATABASE_URL: %w", err)
	}
	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment variables")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
