package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Telegram   TelegramConfig
	RateLimit  RateLimitConfig
	Feed       FeedConfig
	Moderation ModerationConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type TelegramConfig struct {
	BotToken string
	AdminIDs []int64
}

// RateLimitConfig holds per-action hourly caps. Tunable defaults, not
// contracts.
type RateLimitConfig struct {
	LikePerHour   int64
	SkipPerHour   int64
	ReportPerHour int64
	PhotoPerHour  int64
}

type FeedConfig struct {
	// FetchLimit caps the recency-ordered candidate working set per queue
	// build. Matches outside the window are never ranked.
	FetchLimit int
}

type ModerationConfig struct {
	GeminiAPIKey string
	Disabled     bool
}

type LoggingConfig struct {
	Level string
	Dev   bool
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("JWT_TOKEN_TTL_HOURS", 72)
	viper.SetDefault("RATE_LIKE_PER_HOUR", 60)
	viper.SetDefault("RATE_SKIP_PER_HOUR", 120)
	viper.SetDefault("RATE_REPORT_PER_HOUR", 20)
	viper.SetDefault("RATE_PHOTO_PER_HOUR", 20)
	viper.SetDefault("FEED_FETCH_LIMIT", 100)
	viper.SetDefault("LOG_LEVEL", "info")

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL_HOURS")) * time.Hour,
		},
		Telegram: TelegramConfig{
			BotToken: viper.GetString("BOT_TOKEN"),
			AdminIDs: parseAdminIDs(viper.GetString("ADMIN_IDS")),
		},
		RateLimit: RateLimitConfig{
			LikePerHour:   viper.GetInt64("RATE_LIKE_PER_HOUR"),
			SkipPerHour:   viper.GetInt64("RATE_SKIP_PER_HOUR"),
			ReportPerHour: viper.GetInt64("RATE_REPORT_PER_HOUR"),
			PhotoPerHour:  viper.GetInt64("RATE_PHOTO_PER_HOUR"),
		},
		Feed: FeedConfig{
			FetchLimit: viper.GetInt("FEED_FETCH_LIMIT"),
		},
		Moderation: ModerationConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			Disabled:     viper.GetBool("MODERATION_OFF"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
			Dev:   viper.GetBool("LOG_DEV"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("bot token is required")
	}
	if c.Feed.FetchLimit <= 0 {
		return fmt.Errorf("feed fetch limit must be positive")
	}
	return nil
}

// parseAdminIDs splits a comma-separated id list, skipping malformed entries.
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
