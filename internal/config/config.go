package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Provider ProviderConfig `toml:"provider"`
	Geocoder GeocoderConfig `toml:"geocoder"`
	SMTP     SMTPConfig     `toml:"smtp"`
	Payments PaymentsConfig `toml:"payments"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ProviderConfig точка базирования провайдера услуг
// Расстояние до клиента считается от этих координат
type ProviderConfig struct {
	Address   string  `toml:"address"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	// ServiceRadiusKm радиус обслуживания; используется детерминированным
	// геокодером для генерации координат
	ServiceRadiusKm float64 `toml:"service_radius_km"`
}

// GeocoderConfig настройки геокодера
type GeocoderConfig struct {
	// Mode: "http" - внешний геокодер, "static" - детерминированная заглушка
	Mode    string `toml:"mode"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // seconds
}

// SMTPConfig настройки отправки почты
type SMTPConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	From string `toml:"from"`
}

// PaymentsConfig настройки приема платежных колбэков
type PaymentsConfig struct {
	// CallbackToken shared secret для generic колбэка платежного шлюза
	CallbackToken string `toml:"callback_token"`
	// StripeWebhookSecret signing secret для Stripe webhook
	StripeWebhookSecret string `toml:"stripe_webhook_secret"`
	// StripeWebhookTolerance допустимый возраст события в секундах
	StripeWebhookTolerance int `toml:"stripe_webhook_tolerance"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
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
		cfg.Metrics.ServiceName = "appointment-service"
	}
	if cfg.Geocoder.Mode == "" {
		cfg.Geocoder.Mode = "static"
	}
	if cfg.Geocoder.Timeout == 0 {
		cfg.Geocoder.Timeout = 5
	}
	if cfg.Provider.ServiceRadiusKm == 0 {
		cfg.Provider.ServiceRadiusKm = 25
	}
	if cfg.Payments.StripeWebhookTolerance == 0 {
		cfg.Payments.StripeWebhookTolerance = 300
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.Geocoder.Mode != "static" && cfg.Geocoder.Mode != "http" {
		return fmt.Errorf("config: geocoder.mode must be \"static\" or \"http\", got %q", cfg.Geocoder.Mode)
	}
	if cfg.Geocoder.Mode == "http" && cfg.Geocoder.URL == "" {
		return fmt.Errorf("config: geocoder.url is required when geocoder.mode is \"http\"")
	}
	return nil
}
