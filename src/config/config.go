package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Storage   StorageConfig
	Log       LogConfig
	Scheduler SchedulerConfig

	CORSAllowedOrigins []string
	MaintenanceMode    bool
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// RedisConfig is optional; an empty URL disables token revocation.
type RedisConfig struct {
	URL string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	SupportEmail string
}

type StorageConfig struct {
	Bucket        string
	PublicBaseURL string
	UploadTTL     time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

type SchedulerConfig struct {
	PaymentOrphanAfter time.Duration
	SweepInterval      time.Duration
}

const DATE_FORMAT = "2006-01-02"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("API_ENV", "production"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("PORT", 3000),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnvAsInt("DATABASE_PORT", 5432),
			User:     getEnv("DATABASE_USER", "postgres"),
			Password: getEnv("DATABASE_PASSWORD", ""),
			Name:     getEnv("DATABASE_NAME", "staybook"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
			TimeZone: getEnv("DATABASE_TIMEZONE", "UTC"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    getEnvAsDuration("JWT_TTL", time.Hour),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		SMTP: SMTPConfig{
			Host:         os.Getenv("SMTP_HOST"),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Username:     os.Getenv("SMTP_USERNAME"),
			Password:     os.Getenv("SMTP_PASSWORD"),
			From:         getEnv("SMTP_FROM", "no-reply@staybook.local"),
			SupportEmail: os.Getenv("SUPPORT_EMAIL"),
		},
		Storage: StorageConfig{
			Bucket:        os.Getenv("S3_ASSETS_BUCKET"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			UploadTTL:     getEnvAsDuration("S3_UPLOAD_TTL", 15*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Scheduler: SchedulerConfig{
			PaymentOrphanAfter: getEnvAsDuration("PAYMENT_ORPHAN_AFTER", 24*time.Hour),
			SweepInterval:      getEnvAsDuration("PAYMENT_SWEEP_INTERVAL", time.Hour),
		},
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		MaintenanceMode:    getEnvAsBool("MAINTENANCE_MODE", false),
	}

	if cfg.JWT.Secret == "" {
		if !cfg.IsLocal() {
			return nil, errors.New("JWT_SECRET is required")
		}
		cfg.JWT.Secret = "local-development-secret"
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == "test"
}

// DSN renders the postgres connection string.
func (c *Config) DSN() string {
	d := c.Database
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
