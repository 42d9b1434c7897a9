package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Redis          RedisConfig          `toml:"redis"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Schedule       ScheduleConfig       `toml:"schedule"`
	Session        SessionConfig        `toml:"session"`
	Booking        BookingConfig        `toml:"booking"`
	Kafka          KafkaConfig          `toml:"kafka"`
	Tracing        TracingConfig        `toml:"tracing"`
	RateLimit      RateLimitConfig      `toml:"rate_limit"`
	Workers        WorkersConfig        `toml:"workers"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type CatalogServiceConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"`           // секунды
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"` // 0 = без кэша
}

// ScheduleConfig рабочие часы по умолчанию, если у специалиста нет своего расписания
type ScheduleConfig struct {
	WorkStartHour int    `toml:"work_start_hour"`
	WorkEndHour   int    `toml:"work_end_hour"`
	Timezone      string `toml:"timezone"`
}

// Location возвращает часовой пояс расписания
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

type SessionConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

type BookingConfig struct {
	LockTTLSeconds         int `toml:"lock_ttl_seconds"`
	MaxSerializableRetries int `toml:"max_serializable_retries"`
}

type KafkaConfig struct {
	Enabled        bool   `toml:"enabled"`
	Brokers        string `toml:"brokers"` // через запятую
	TopicPrefix    string `toml:"topic_prefix"`
	PollIntervalMs int    `toml:"poll_interval_ms"`
	BatchSize      int    `toml:"batch_size"`
}

type TracingConfig struct {
	Enabled      bool    `toml:"enabled"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type WorkersConfig struct {
	ContractExpiryIntervalSeconds int `toml:"contract_expiry_interval_seconds"`
}

// Load читает .env (если есть), TOML-файл и переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.CatalogService.URL, "CATALOG_SERVICE_URL")
	setString(&cfg.Kafka.Brokers, "KAFKA_BROKERS")
	setString(&cfg.Tracing.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "coaching-service"
	}
	if cfg.CatalogService.Timeout == 0 {
		cfg.CatalogService.Timeout = 5
	}
	if cfg.Schedule.WorkStartHour == 0 && cfg.Schedule.WorkEndHour == 0 {
		cfg.Schedule.WorkStartHour = 8
		cfg.Schedule.WorkEndHour = 20
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Booking.LockTTLSeconds == 0 {
		cfg.Booking.LockTTLSeconds = 10
	}
	if cfg.Booking.MaxSerializableRetries == 0 {
		cfg.Booking.MaxSerializableRetries = 3
	}
	if cfg.Kafka.TopicPrefix == "" {
		cfg.Kafka.TopicPrefix = "coaching"
	}
	if cfg.Kafka.PollIntervalMs == 0 {
		cfg.Kafka.PollIntervalMs = 2000
	}
	if cfg.Kafka.BatchSize == 0 {
		cfg.Kafka.BatchSize = 50
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 20
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 40
	}
	if cfg.Workers.ContractExpiryIntervalSeconds == 0 {
		cfg.Workers.ContractExpiryIntervalSeconds = 300
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis addr is required", ErrInvalidConfig)
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("%w: catalog_service url is required", ErrInvalidConfig)
	}
	if c.Schedule.WorkStartHour < 0 || c.Schedule.WorkEndHour > 24 ||
		c.Schedule.WorkStartHour >= c.Schedule.WorkEndHour {
		return fmt.Errorf("%w: schedule hours must satisfy 0 <= start < end <= 24", ErrInvalidConfig)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: unknown schedule timezone %q", ErrInvalidConfig, c.Schedule.Timezone)
	}
	if c.Kafka.Enabled && c.Kafka.Brokers == "" {
		return fmt.Errorf("%w: kafka brokers are required when kafka is enabled", ErrInvalidConfig)
	}
	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		return fmt.Errorf("%w: tracing otlp_endpoint is required when tracing is enabled", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
