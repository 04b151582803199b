package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/database"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Garage"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"garage"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
		Seed     bool   `envconfig:"DB_SEED" default:"false"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Billing struct {
		DueDays int `envconfig:"BILLING_DUE_DAYS" default:"7"`
	}

	Reports struct {
		LowStockThreshold int             `envconfig:"REPORT_LOW_STOCK_THRESHOLD" default:"5"`
		BilledThreshold   decimal.Decimal `envconfig:"REPORT_BILLED_THRESHOLD" default:"200"`
		TopClients        int             `envconfig:"REPORT_TOP_CLIENTS" default:"3"`
		// Zero disables the Redis result cache.
		CacheTTL time.Duration `envconfig:"REPORT_CACHE_TTL" default:"0s"`
	}

	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0"`
	}

	AMQP struct {
		URL   string `envconfig:"AMQP_URL"`
		Queue string `envconfig:"AMQP_STATUS_QUEUE" default:"work_order.status_changed"`
	}

	// An empty secret leaves the API unauthenticated.
	Auth struct {
		JWTSecret string        `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string        `envconfig:"AUTH_ISSUER" default:"garage"`
		TokenTTL  time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) Pool() database.Pool {
	return database.Pool{
		MaxOpen:     c.DB.MaxOpenConns,
		MaxIdle:     c.DB.MaxIdleConns,
		MaxLifetime: c.DB.ConnMaxLifetime,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Billing.DueDays < 0 {
		return nil, fmt.Errorf("BILLING_DUE_DAYS must not be negative, got %d", cfg.Billing.DueDays)
	}

	if cfg.Reports.LowStockThreshold < 0 {
		return nil, fmt.Errorf("REPORT_LOW_STOCK_THRESHOLD must not be negative, got %d", cfg.Reports.LowStockThreshold)
	}

	if cfg.Reports.BilledThreshold.IsNegative() {
		return nil, fmt.Errorf("REPORT_BILLED_THRESHOLD must not be negative, got %s", cfg.Reports.BilledThreshold)
	}

	if cfg.Reports.TopClients <= 0 {
		return nil, fmt.Errorf("REPORT_TOP_CLIENTS must be greater than 0, got %d", cfg.Reports.TopClients)
	}

	if cfg.DB.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS must be greater than 0, got %d", cfg.DB.MaxOpenConns)
	}

	if cfg.DB.MaxIdleConns < 0 || cfg.DB.MaxIdleConns > cfg.DB.MaxOpenConns {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", cfg.DB.MaxIdleConns)
	}

	if cfg.DB.ConnMaxLifetime < 0 {
		return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME must not be negative, got %s", cfg.DB.ConnMaxLifetime)
	}

	return &cfg, nil
}
