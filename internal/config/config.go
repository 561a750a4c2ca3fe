package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		CORSOrigins     []string      `yaml:"corsOrigins"`
		RateLimit       int           `yaml:"rateLimit"`       // burst per client IP, 0 disables
		RateLimitRefill int           `yaml:"rateLimitRefill"` // tokens per second
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	} `yaml:"server"`

	Source struct {
		Driver  string        `yaml:"driver"` // mysql | postgres | sqlite | rest | csv
		Dataset string        `yaml:"dataset"`
		Timeout time.Duration `yaml:"timeout"`
		CSVDir  string        `yaml:"csvDir"`
		RESTURL string        `yaml:"restURL"`
		RESTKey string        `yaml:"restKey"`
		// RESTOrder is the column the rest driver sorts pages by.
		RESTOrder string `yaml:"restOrder"`
	} `yaml:"source"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres | sqlite
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Path     string `yaml:"path"` // sqlite file
		DSN      string `yaml:"dsn"`  // overrides the fields above
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	AI struct {
		Provider  string        `yaml:"provider"` // openai | anthropic
		APIKey    string        `yaml:"apiKey"`
		Model     string        `yaml:"model"`
		BaseURL   string        `yaml:"baseURL"`
		MaxTokens int           `yaml:"maxTokens"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"ai"`

	Minio struct {
		Enabled       bool          `yaml:"enabled"`
		Endpoint      string        `yaml:"endpoint"`
		AccessKey     string        `yaml:"accessKey"`
		SecretKey     string        `yaml:"secretKey"`
		BucketName    string        `yaml:"bucketName"`
		Region        string        `yaml:"region"`
		UseSSL        bool          `yaml:"useSSL"`
		Prefix        string        `yaml:"prefix"`
		PresignExpiry time.Duration `yaml:"presignExpiry"`
	} `yaml:"minio"`

	Audit struct {
		Enabled bool `yaml:"enabled"`
		Migrate bool `yaml:"migrate"`
	} `yaml:"audit"`

	Build struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"build"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load baca file config, lalu env override dan default.
// A missing file is not an error: env and defaults alone are enough.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				*dst = strings.TrimSpace(v)
				return
			}
		}
	}
	set(&c.Source.Dataset, "LOAN_DATASET")
	set(&c.Source.RESTURL, "SUPABASE_URL")
	set(&c.Source.RESTKey, "SUPABASE_API_KEY")
	set(&c.Source.RESTOrder, "SUPABASE_ORDER")
	set(&c.Database.DSN, "DATABASE_DSN")
	set(&c.Log.Level, "LOG_LEVEL")

	switch strings.ToLower(c.AI.Provider) {
	case "anthropic":
		set(&c.AI.APIKey, "ANTHROPIC_API_KEY")
	default:
		set(&c.AI.APIKey, "OPENAI_API_KEY")
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitRefill <= 0 {
		c.Server.RateLimitRefill = c.Server.RateLimit
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	c.Source.Driver = strings.ToLower(strings.TrimSpace(c.Source.Driver))
	if c.Source.Driver == "" {
		if c.Source.RESTURL != "" {
			c.Source.Driver = "rest"
		} else {
			c.Source.Driver = "mysql"
		}
	}
	if c.Source.Dataset == "" {
		c.Source.Dataset = "loans"
	}
	if c.Source.Timeout <= 0 {
		c.Source.Timeout = 60 * time.Second
	}
	if c.Source.CSVDir == "" {
		c.Source.CSVDir = "data"
	}
	if c.Source.RESTOrder == "" {
		c.Source.RESTOrder = "id"
	}

	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		switch c.Source.Driver {
		case "postgres", "sqlite":
			c.Database.Driver = c.Source.Driver
		default:
			c.Database.Driver = "mysql"
		}
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		switch c.Database.Driver {
		case "postgres":
			c.Database.Port = 5432
		default:
			c.Database.Port = 3306
		}
	}
	if c.Database.Path == "" {
		c.Database.Path = "loans.db"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		c.AI.Provider = "openai"
	}
	if c.AI.Model == "" {
		switch c.AI.Provider {
		case "anthropic":
			c.AI.Model = "claude-haiku-4-5-20251001"
		default:
			c.AI.Model = "gpt-3.5-turbo"
		}
	}
	if c.AI.MaxTokens <= 0 {
		c.AI.MaxTokens = 150
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = 30 * time.Second
	}

	if c.Minio.Region == "" {
		c.Minio.Region = "us-east-1"
	}
	if c.Minio.Prefix == "" {
		c.Minio.Prefix = "charts"
	}
	if c.Build.Timeout <= 0 {
		c.Build.Timeout = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// UsesDatabase reports whether a SQL connection is needed.
func (c *Config) UsesDatabase() bool {
	switch c.Source.Driver {
	case "mysql", "postgres", "sqlite":
		return true
	}
	return c.Audit.Enabled
}

// DatabaseDSN builds the connection string for Database.Driver.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	switch c.Database.Driver {
	case "postgres":
		return c.PostgresDSN()
	case "sqlite":
		return c.Database.Path
	default:
		return c.MySQLDSN()
	}
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a postgres:// URL for lib/pq.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}
