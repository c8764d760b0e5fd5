package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"TradePilot/internal/model"
)

// Config is the top-level application configuration, loaded from YAML with
// environment variable overrides.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Watchlist  []string         `yaml:"watchlist"`
	DataSource DataSourceConfig `yaml:"data_source"`
	Cache      CacheConfig      `yaml:"cache"`
	Database   DatabaseConfig   `yaml:"database"`
	News       NewsConfig       `yaml:"news"`
	Bot        BotConfig        `yaml:"bot"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DataSourceConfig struct {
	// Proxy is passed to the HTTP client when the market data host is not
	// directly reachable.
	Proxy string `yaml:"proxy"`
	// UseMock serves deterministic synthetic data instead of live quotes.
	UseMock bool `yaml:"use_mock"`
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend  string        `yaml:"backend"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type DatabaseConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

type NewsConfig struct {
	BaseURL string `yaml:"base_url"`
}

type BotConfig struct {
	CheckInterval time.Duration `yaml:"check_interval"`
}

type ScheduleConfig struct {
	// RefreshCron is a six-field cron spec for the watchlist refresh job.
	RefreshCron string `yaml:"refresh_cron"`
	// Timeframe used when ranking the watchlist.
	Timeframe string `yaml:"timeframe"`
}

// defaultWatchlist mirrors the symbols tracked on the dashboard out of the box.
var defaultWatchlist = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA",
	"NVDA", "META", "NFLX", "AMD", "INTC",
	"JPM", "BAC", "WMT", "V", "MA",
	"DIS", "PYPL", "ADBE", "CRM", "ORCL",
}

// Load reads the YAML config at path, fills defaults and applies environment
// overrides. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Watchlist) == 0 {
		c.Watchlist = defaultWatchlist
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "tradepilot.db"
	}
	if c.Bot.CheckInterval == 0 {
		c.Bot.CheckInterval = 10 * time.Second
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if c.Schedule.Timeframe == "" {
		c.Schedule.Timeframe = "1d"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TRADEPILOT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("TRADEPILOT_PROXY"); v != "" {
		c.DataSource.Proxy = v
	}
	if v := os.Getenv("TRADEPILOT_USE_MOCK"); v != "" {
		c.DataSource.UseMock = v == "1" || v == "true"
	}
	if v := os.Getenv("TRADEPILOT_REDIS_ADDR"); v != "" {
		c.Cache.Backend = "redis"
		c.Cache.Addr = v
	}
	if v := os.Getenv("TRADEPILOT_REDIS_PASSWORD"); v != "" {
		c.Cache.Password = v
	}
	if v := os.Getenv("TRADEPILOT_DB_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("TRADEPILOT_NEWS_URL"); v != "" {
		c.News.BaseURL = v
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}
	if _, err := model.ParseTimeframe(c.Schedule.Timeframe); err != nil {
		return fmt.Errorf("schedule timeframe: %w", err)
	}
	if c.Bot.CheckInterval < time.Second {
		return fmt.Errorf("bot check interval too small: %v", c.Bot.CheckInterval)
	}
	return nil
}
