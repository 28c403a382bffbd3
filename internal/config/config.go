package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Source   SourceConfig
	Trading  TradingConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Host string
}

// StorageConfig selects the backing store. Driver is "sqlite" or "postgres".
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SourceConfig configures the openclaw CLI used as the job and session source.
type SourceConfig struct {
	Binary          string
	Timeout         int // seconds
	BreakerFailures int
	BreakerCooldown int // seconds
}

type TradingConfig struct {
	KalshiStatePath string
}

// WorkerConfig configures the cron worker. METRICS_ADDR=off disables
// its metrics listener.
type WorkerConfig struct {
	MetricsAddr  string
	MaxRetries   int
	RetryBackoff int // seconds
}

func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
		},
		Storage: StorageConfig{
			Driver:     getEnv("STORE_DRIVER", "sqlite"),
			SQLitePath: getEnv("SQLITE_PATH", filepath.Join(os.TempDir(), "mission-control.db")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "mission"),
			Password: getEnv("DB_PASSWORD", "mission"),
			DBName:   getEnv("DB_NAME", "mission_control"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Source: SourceConfig{
			Binary:          getEnv("OPENCLAW_BIN", "openclaw"),
			Timeout:         getEnvAsInt("SOURCE_TIMEOUT", 10),
			BreakerFailures: getEnvAsInt("SOURCE_BREAKER_FAILURES", 5),
			BreakerCooldown: getEnvAsInt("SOURCE_BREAKER_COOLDOWN", 30),
		},
		Trading: TradingConfig{
			KalshiStatePath: getEnv("KALSHI_STATE_PATH", "/home/clawd/clawd/projects/kalshi-bot/weather-state.json"),
		},
		Worker: WorkerConfig{
			MetricsAddr:  getEnv("METRICS_ADDR", ":9091"),
			MaxRetries:   getEnvAsInt("JOB_MAX_RETRIES", 2),
			RetryBackoff: getEnvAsInt("JOB_RETRY_BACKOFF", 5),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) DatabaseURL() string {
	// If DATABASE_URL is set, use it directly
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	// Otherwise, construct from individual components
	return "postgres://" + c.Database.User + ":" + c.Database.Password +
		"@" + c.Database.Host + ":" + c.Database.Port +
		"/" + c.Database.DBName + "?sslmode=" + c.Database.SSLMode
}
