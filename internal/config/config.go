package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	SMTP      SMTPConfig      `toml:"smtp"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Reception ReceptionConfig `toml:"reception"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// RedisConfig параметры Redis; пустой Addr - состояние хранится в памяти процесса
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	PoolSize  int    `toml:"pool_size"`
	KeyPrefix string `toml:"key_prefix"`
}

// Enabled возвращает true, если Redis настроен
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// SMTPConfig параметры отправки почты
// Transport: "smtp" - реальная отправка, "log" - письма пишутся в лог
type SMTPConfig struct {
	Transport     string `toml:"transport"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	FromEmail     string `toml:"from_email"`
	FromName      string `toml:"from_name"`
	UseSTARTTLS   bool   `toml:"use_starttls"`
	SkipTLSVerify bool   `toml:"skip_tls_verify"`
	Timeout       int    `toml:"timeout"` // секунды
	MessageDomain string `toml:"message_domain"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ReceptionConfig бизнес-параметры ресепшена
type ReceptionConfig struct {
	TimeZone         string `toml:"time_zone"`
	DefaultCurrency  string `toml:"default_currency"`
	InvitationPrefix string `toml:"invitation_prefix"`
	InvitationSeq    string `toml:"invitation_sequence"`
	SettingsCacheTTL int    `toml:"settings_cache_ttl"` // секунды
}

// Location загружает часовой пояс ресепшена
func (r ReceptionConfig) Location() (*time.Location, error) {
	return time.LoadLocation(r.TimeZone)
}

// SchedulerConfig расписание периодических задач (cron, 5 полей)
type SchedulerConfig struct {
	Enabled            bool   `toml:"enabled"`
	OverdueInvitations string `toml:"overdue_invitations"`
	DuePayments        string `toml:"due_payments"`
	LockTTL            int    `toml:"lock_ttl"` // секунды
}

var (
	// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Load читает TOML файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			PoolSize:  10,
			KeyPrefix: "reception:",
		},
		SMTP: SMTPConfig{
			Transport: "log",
			Port:      587,
			Timeout:   10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reception-service",
		},
		Reception: ReceptionConfig{
			TimeZone:         "UTC",
			DefaultCurrency:  "EUR",
			InvitationPrefix: "INV/",
			InvitationSeq:    "invitation_seq",
			SettingsCacheTTL: 60,
		},
		Scheduler: SchedulerConfig{
			Enabled:            true,
			OverdueInvitations: "0 * * * *",
			DuePayments:        "0 8 * * *",
			LockTTL:            300,
		},
	}
}

// applyEnv переопределяет секреты из окружения
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
		cfg.SMTP.Password = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if strings.TrimSpace(c.Database.Host) == "" {
		problems = append(problems, "database.host is required")
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		problems = append(problems, "database.dbname is required")
	}
	switch c.SMTP.Transport {
	case "log":
	case "smtp":
		if strings.TrimSpace(c.SMTP.Host) == "" {
			problems = append(problems, "smtp.host is required for smtp transport")
		}
		if strings.TrimSpace(c.SMTP.FromEmail) == "" {
			problems = append(problems, "smtp.from_email is required for smtp transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("smtp.transport must be smtp or log, got %q", c.SMTP.Transport))
	}
	if _, err := c.Reception.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("reception.time_zone: %v", err))
	}
	if len(c.Reception.DefaultCurrency) != 3 {
		problems = append(problems, "reception.default_currency must be an ISO-4217 code")
	}
	if strings.TrimSpace(c.Reception.InvitationSeq) == "" {
		problems = append(problems, "reception.invitation_sequence is required")
	}
	if c.Scheduler.LockTTL <= 0 {
		problems = append(problems, "scheduler.lock_ttl must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
