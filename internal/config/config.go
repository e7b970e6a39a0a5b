package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	AuthHeader         string        `mapstructure:"auth_header"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	FeedSort            string        `mapstructure:"feed_sort"`
	PollIntervalSeconds int64         `mapstructure:"poll_interval_seconds"`
	PollInterval        time.Duration `mapstructure:"-"`
	PublishersFile      string        `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	HeartbeatEnable          bool     `mapstructure:"heartbeat_enable"`
	HeartbeatIntervalMinutes int      `mapstructure:"heartbeat_interval_minutes"`
	HeartbeatMaxDailyPosts   int      `mapstructure:"heartbeat_max_daily_posts"`
	HeartbeatTopics          []string `mapstructure:"heartbeat_topics"`
	HeartbeatPersonality     string   `mapstructure:"heartbeat_personality"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "honeycomb-bot")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://thehoneycomb.social/api")
	v.SetDefault("auth_header", "X-API-Key")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("feed_sort", "new")
	v.SetDefault("poll_interval_seconds", 300)
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/seen.db")
	v.SetDefault("storage_ttl_seconds", int64((5*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("heartbeat_enable", false)
	v.SetDefault("heartbeat_interval_minutes", 30)
	v.SetDefault("heartbeat_max_daily_posts", 24)
	v.SetDefault("heartbeat_personality", "autonomous")

	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about; keys without
	// a default must be bound explicitly or the env value is never seen.
	for _, key := range []string{"api_key", "heartbeat_topics"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid poll_interval_seconds (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}

// LogFields returns the startup-log view of the config. The API key never
// appears here, only whether one was supplied.
func (c *Config) LogFields() map[string]any {
	return map[string]any{
		"app_name":         c.AppName,
		"app_env":          c.Env,
		"log_level":        c.LogLevel,
		"base_url":         c.BaseURL,
		"auth_header":      c.AuthHeader,
		"api_key_set":      c.APIKey != "",
		"http_timeout":     c.HTTPTimeout.String(),
		"feed_sort":        c.FeedSort,
		"poll_interval":    c.PollInterval.String(),
		"publishers_file":  c.PublishersFile,
		"storage_type":     c.StorageType,
		"bbolt_path":       c.BBoltPath,
		"heartbeat_enable": c.HeartbeatEnable,
	}
}
