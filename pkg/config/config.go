package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GAMINGTECH_APP_ENV" default:"dev"`
	Port         string `envconfig:"GAMINGTECH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GAMINGTECH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMINGTECH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig selects the key-value snapshot backend.
type StoreConfig struct {
	Backend string `envconfig:"GAMINGTECH_STORE_BACKEND" default:"memory"`
}

func (s StoreConfig) validate() error {
	switch s.Backend {
	case StoreBackendMemory, StoreBackendRedis, StoreBackendGorm:
		return nil
	}
	return fmt.Errorf("unknown store backend %q", s.Backend)
}

type DBConfig struct {
	DSN        string `envconfig:"GAMINGTECH_DB_DSN"`
	SQLitePath string `envconfig:"GAMINGTECH_DB_SQLITE_PATH" default:"gamingtech.db"`

	MaxOpenConns    int           `envconfig:"GAMINGTECH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMINGTECH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMINGTECH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMINGTECH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GAMINGTECH_REDIS_URL"`
	Address      string        `envconfig:"GAMINGTECH_REDIS_ADDR"`
	Password     string        `envconfig:"GAMINGTECH_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMINGTECH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMINGTECH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMINGTECH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMINGTECH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMINGTECH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMINGTECH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GAMINGTECH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GAMINGTECH_JWT_ISSUER" default:"gamingtech-api"`
	ExpirationMinutes int    `envconfig:"GAMINGTECH_JWT_EXPIRATION_MINUTES" default:"60"`
}

// PricingConfig carries the fee and tax schedule. Amounts are PKR.
type PricingConfig struct {
	FreeShippingThreshold float64 `envconfig:"GAMINGTECH_PRICING_FREE_SHIPPING_THRESHOLD" default:"5000"`
	FlatShippingFee       float64 `envconfig:"GAMINGTECH_PRICING_FLAT_SHIPPING_FEE" default:"250"`
	TaxRate               float64 `envconfig:"GAMINGTECH_PRICING_TAX_RATE" default:"0.17"`
}

func (p PricingConfig) validate() error {
	if p.FreeShippingThreshold < 0 || p.FlatShippingFee < 0 {
		return fmt.Errorf("pricing amounts must be non-negative")
	}
	if p.TaxRate < 0 || p.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be in [0,1)")
	}
	return nil
}

type CheckoutConfig struct {
	ProcessingTimeout time.Duration `envconfig:"GAMINGTECH_CHECKOUT_PROCESSING_TIMEOUT" default:"10s"`
	SimulatedLatency  time.Duration `envconfig:"GAMINGTECH_CHECKOUT_SIMULATED_LATENCY" default:"2s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GAMINGTECH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GAMINGTECH_AUTO_MIGRATE" default:"false"`
}
