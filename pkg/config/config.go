package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"500ms"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100"`
		MaxBackups int    `yaml:"max_backups" default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" default:"7"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Dashboard struct {
		QuoteInterval  time.Duration `yaml:"quote_interval" default:"5s"`
		ClockInterval  time.Duration `yaml:"clock_interval" default:"1s"`
		StreamInterval time.Duration `yaml:"stream_interval" default:"1s"`
		SessionIdleTTL time.Duration `yaml:"session_idle_ttl" default:"30m"`
		SweepSchedule  string        `yaml:"sweep_schedule" default:"@every 1m"`
		CookieName     string        `yaml:"cookie_name" default:"gold_session"`
		Widget         struct {
			ScriptBaseURL string `yaml:"script_base_url" default:"https://s3.tradingview.com/external-embedding"`
			Theme         string `yaml:"theme" default:"dark"`
			Locale        string `yaml:"locale" default:"en"`
		} `yaml:"widget"`
	} `yaml:"dashboard"`
	RateLimit struct {
		Enabled  bool          `yaml:"enabled" default:"true"`
		Requests int           `yaml:"requests" default:"120"`
		Window   time.Duration `yaml:"window" default:"1m"`
	} `yaml:"rate_limit"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host" default:"localhost"`
		Port     int    `yaml:"port" default:"6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"goldtracker"`
		Pool     struct {
			Size         int           `yaml:"size" default:"10"`
			MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
			Timeout      time.Duration `yaml:"timeout" default:"30s"`
		} `yaml:"pool"`
		ConnectTimeout time.Duration `yaml:"connect_timeout" default:"5s"`
		ConnectRetries uint64        `yaml:"connect_retries" default:"5"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"gold.quotes"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"1s"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Pipeline struct {
			MaxPerSecond int `yaml:"max_per_second" default:"10"`
			BufferSize   int `yaml:"buffer_size" default:"256"`
		} `yaml:"pipeline"`
	} `yaml:"kafka"`
}

// Load reads and parses a YAML configuration file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A .env file in the working directory is loaded first when present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GOLD_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("GOLD_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("GOLD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GOLD_REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Enabled = true
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("GOLD_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json', got '%s'", c.Log.Format)
	}
	if c.Dashboard.QuoteInterval <= 0 || c.Dashboard.ClockInterval <= 0 || c.Dashboard.StreamInterval <= 0 {
		return fmt.Errorf("dashboard intervals must be positive")
	}
	if c.Dashboard.SessionIdleTTL <= 0 {
		return fmt.Errorf("dashboard.session_idle_ttl must be positive")
	}
	if c.Dashboard.SweepSchedule == "" {
		return fmt.Errorf("dashboard.sweep_schedule is required")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit requests and window must be positive")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("kafka.topic is required when kafka is enabled")
		}
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
