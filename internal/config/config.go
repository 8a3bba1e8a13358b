package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment. Empty
// table/queue settings leave the corresponding AWS-backed feature
// disabled, so the gateway can run standalone with the built-in rates.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	RunLocal bool   `env:"RUN_LOCAL" envDefault:"false"`

	AWSRegion        string `env:"AWS_REGION"`
	RatesTable       string `env:"RATES_TABLE"`
	QuoteCacheTable  string `env:"QUOTE_CACHE_TABLE"`
	SearchAuditTable string `env:"SEARCH_AUDIT_TABLE"`
	AuditQueueURL    string `env:"AUDIT_QUEUE_URL"`
	MetricsNamespace string `env:"METRICS_NAMESPACE"`

	QuoteCacheTTL time.Duration `env:"QUOTE_CACHE_TTL" envDefault:"15m" validate:"gt=0"`

	MarkupPercent    float64 `env:"MARKUP_PERCENT" envDefault:"3.2" validate:"gte=0"`
	MinMarkupPercent float64 `env:"MIN_MARKUP_PERCENT" envDefault:"5" validate:"gte=0"`
}

// Read loads and validates configuration from the environment, honoring a
// local .env file when present.
func Read() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := validatorv10.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// UsesAWS reports whether any AWS-backed feature is enabled.
func (c *Config) UsesAWS() bool {
	return c.RatesTable != "" ||
		c.QuoteCacheTable != "" ||
		c.SearchAuditTable != "" ||
		c.AuditQueueURL != "" ||
		c.MetricsNamespace != ""
}
