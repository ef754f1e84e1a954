package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config global configuration, mirrors config/config.yaml
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

// DatabaseConfig saved-view store. Disabled means views are unavailable, queries still work.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"` // silent/error/warn/info
}

// UpstreamConfig the stats provider
type UpstreamConfig struct {
	Provider          string        `mapstructure:"provider"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RetryCount        int           `mapstructure:"retry_count"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	PerPage           int           `mapstructure:"per_page"`
	MaxPages          int           `mapstructure:"max_pages"`
	LookupChunk       int           `mapstructure:"lookup_chunk"`
	LookupConcurrency int           `mapstructure:"lookup_concurrency"`
	Proxy             string        `mapstructure:"proxy"`
}

// CacheConfig optional redis page cache
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AnalyticsConfig tunable engine constants
type AnalyticsConfig struct {
	WilsonZ            float64 `mapstructure:"wilson_z"`
	RecencyWeight      float64 `mapstructure:"recency_weight"`
	IncludeZeroMinutes bool    `mapstructure:"include_zero_minutes"`
}

// Default a complete configuration that needs no file
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Mode: "release"},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
		},
		Upstream: UpstreamConfig{
			Provider:          "balldontlie",
			BaseURL:           "https://api.balldontlie.io/v1",
			Timeout:           15 * time.Second,
			RetryCount:        3,
			RetryBackoff:      500 * time.Millisecond,
			PerPage:           100,
			MaxPages:          50,
			LookupChunk:       90,
			LookupConcurrency: 4,
		},
		Cache: CacheConfig{Addr: "localhost:6379", TTL: 5 * time.Minute},
		Analytics: AnalyticsConfig{
			WilsonZ:       1.64,
			RecencyWeight: 2.0,
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("database.enabled", d.Database.Enabled)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("database.log_level", d.Database.LogLevel)
	v.SetDefault("upstream.provider", d.Upstream.Provider)
	v.SetDefault("upstream.base_url", d.Upstream.BaseURL)
	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("upstream.retry_count", d.Upstream.RetryCount)
	v.SetDefault("upstream.retry_backoff", d.Upstream.RetryBackoff)
	v.SetDefault("upstream.per_page", d.Upstream.PerPage)
	v.SetDefault("upstream.max_pages", d.Upstream.MaxPages)
	v.SetDefault("upstream.lookup_chunk", d.Upstream.LookupChunk)
	v.SetDefault("upstream.lookup_concurrency", d.Upstream.LookupConcurrency)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.addr", d.Cache.Addr)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("analytics.wilson_z", d.Analytics.WilsonZ)
	v.SetDefault("analytics.recency_weight", d.Analytics.RecencyWeight)
	v.SetDefault("analytics.include_zero_minutes", d.Analytics.IncludeZeroMinutes)
}

// LoadConfig loads config/config.yaml on top of Default(). Secrets come from the
// environment (a local .env is read first) and beat the file.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, cfg.Validate()
}

// overrideFromEnv secrets and deployment-specific endpoints
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("BDL_API_KEY"); v != "" {
		cfg.Upstream.APIKey = v
	}
	if v := os.Getenv("UPSTREAM_PROXY"); v != "" {
		cfg.Upstream.Proxy = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
		cfg.Database.Enabled = true
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Addr = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return errors.New("upstream.base_url is required")
	}
	if c.Upstream.PerPage <= 0 || c.Upstream.PerPage > 100 {
		return fmt.Errorf("upstream.per_page must be in 1..100, got %d", c.Upstream.PerPage)
	}
	if c.Upstream.LookupChunk <= 0 || c.Upstream.LookupChunk > 100 {
		return fmt.Errorf("upstream.lookup_chunk must be in 1..100, got %d", c.Upstream.LookupChunk)
	}
	if c.Upstream.MaxPages <= 0 {
		return fmt.Errorf("upstream.max_pages must be positive, got %d", c.Upstream.MaxPages)
	}
	if c.Analytics.WilsonZ <= 0 {
		return fmt.Errorf("analytics.wilson_z must be positive, got %v", c.Analytics.WilsonZ)
	}
	if c.Analytics.RecencyWeight < 0 {
		return fmt.Errorf("analytics.recency_weight must not be negative, got %v", c.Analytics.RecencyWeight)
	}
	if c.Database.Enabled && c.Database.DSN == "" {
		return errors.New("database.dsn is required when the database is enabled")
	}
	return nil
}

// GetGORMConfig gorm settings for the saved-view store
func (d *DatabaseConfig) GetGORMConfig() *gorm.Config {
	level := logger.Warn
	switch strings.ToLower(d.LogLevel) {
	case "silent":
		level = logger.Silent
	case "error":
		level = logger.Error
	case "info":
		level = logger.Info
	}
	return &gorm.Config{Logger: logger.Default.LogMode(level)}
}
