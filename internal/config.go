package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"http_server"`
	Database DatabaseConfig `mapstructure:"database"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Security SecurityConfig `mapstructure:"security"`
	Accrual  AccrualConfig  `mapstructure:"accrual"`
	App      AppConfig      `mapstructure:"app"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// UpstreamConfig points at the time-tracking REST API the portal fronts.
type UpstreamConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	ValidateResponses bool          `mapstructure:"validate_responses"`
}

type SecurityConfig struct {
	SessionCookieName string        `mapstructure:"session_cookie_name"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SecureCookies     bool          `mapstructure:"secure_cookies"`
	// JWTSecret enables HS256 verification of upstream tokens. Empty means claims are trusted as-is.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type AccrualConfig struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	JobQueueSize int           `mapstructure:"job_queue_size"`
	JobTimeout   time.Duration `mapstructure:"job_timeout"`
}

type AppConfig struct {
	Timezone string `mapstructure:"timezone"`
	PageSize int    `mapstructure:"page_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- DEFAULTS -----------------

const (
	DefaultSessionCookieName = "timeclock_session"
	DefaultPageSize          = 10
	DefaultSessionTTL        = 12 * time.Hour
)

// ApplyDefaults fills zero values the same way for file and env based configs.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 10 * time.Second
	}
	if c.Security.SessionCookieName == "" {
		c.Security.SessionCookieName = DefaultSessionCookieName
	}
	if c.Security.SessionTTL == 0 {
		c.Security.SessionTTL = DefaultSessionTTL
	}
	if c.Accrual.MaxWorkers == 0 {
		c.Accrual.MaxWorkers = 4
	}
	if c.Accrual.JobQueueSize == 0 {
		c.Accrual.JobQueueSize = 100
	}
	if c.Accrual.JobTimeout == 0 {
		c.Accrual.JobTimeout = 10 * time.Second
	}
	if c.App.Timezone == "" {
		c.App.Timezone = "UTC"
	}
	if c.App.PageSize == 0 {
		c.App.PageSize = DefaultPageSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Location resolves App.Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ----------------- ENV LOADING -----------------

// LoadConfigFromEnv builds the config for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Env: getEnv("APP_ENV", "production"),
		Server: ServerConfig{
			Port:    getEnvAsInt("PORT", 8080),
			BaseURL: getEnv("BASE_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Source:       getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Upstream: UpstreamConfig{
			BaseURL:           getEnv("UPSTREAM_BASE_URL", ""),
			Timeout:           getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			ValidateResponses: getEnvAsBool("UPSTREAM_VALIDATE_RESPONSES", false),
		},
		Security: SecurityConfig{
			SessionCookieName: getEnv("SESSION_COOKIE_NAME", DefaultSessionCookieName),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),
			SecureCookies:     getEnvAsBool("SECURE_COOKIES", true),
			JWTSecret:         getEnv("JWT_SECRET", ""),
		},
		Accrual: AccrualConfig{
			Username:     getEnv("ACCRUAL_USERNAME", ""),
			Password:     getEnv("ACCRUAL_PASSWORD", ""),
			MaxWorkers:   getEnvAsInt("ACCRUAL_MAX_WORKERS", 4),
			JobQueueSize: getEnvAsInt("ACCRUAL_JOB_QUEUE_SIZE", 100),
		},
		App: AppConfig{
			Timezone: getEnv("APP_TIMEZONE", "UTC"),
			PageSize: getEnvAsInt("APP_PAGE_SIZE", DefaultPageSize),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Upstream.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("upstream config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("app config: invalid timezone %q", c.App.Timezone))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver != "postgres" && c.Driver != "sqlite" {
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *UpstreamConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if c.SessionCookieName == "" {
		return errors.New("session_cookie_name is required")
	}
	if c.SessionTTL < time.Minute {
		return errors.New("session_ttl must be at least one minute")
	}
	return nil
}
