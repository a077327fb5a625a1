package config

import "time"

// Workflow represents the configuration for the invoice-check robot trigger
type Workflow struct {
	Enabled     bool   `mapstructure:"enabled"`
	Topic       string `mapstructure:"topic" validate:"required_if=Enabled true"`
	TriggerURL  string `mapstructure:"trigger_url" validate:"required_if=Enabled true"`
	AccessToken string `mapstructure:"access_token"`

	// Delivery retries happen on the message router, never inside a request
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`

	// DedupeTTL bounds how long a delivered invoice id is remembered
	DedupeTTL time.Duration `mapstructure:"dedupe_ttl"`
}
