package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Language LanguageConfig `mapstructure:"language"`
	Routing  RoutingConfig  `mapstructure:"routing"  validate:"required"`
}

// ServerConfig contains the inbound HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the farmer directory database settings. The URL
// is optional: without one the gateway serves the seeded in-memory
// directory instead.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,uri"`
}

// LanguageConfig tunes the normalizer's static tables.
type LanguageConfig struct {
	// DefaultLocale is assumed when a request carries no locale hint.
	DefaultLocale string `mapstructure:"default_locale"`
	// Synonyms extends the built-in dialect table; keys are variants,
	// values the canonical form.
	Synonyms map[string]string `mapstructure:"synonyms"`
	// ExtraTerms extends the built-in canonical term list, feeding the
	// diacritic restoration table.
	ExtraTerms []string `mapstructure:"extra_terms"`
}

// ServiceConfig describes one backend service.
type ServiceConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout is the per-attempt budget for one outbound call.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	// Retries is the number of additional transport attempts after the
	// first; backend error statuses are never retried.
	Retries int `mapstructure:"retries" validate:"gte=0,lte=10"`
	// ForwardCanonical opts this backend into receiving normalized text
	// instead of the original payload.
	ForwardCanonical bool `mapstructure:"forward_canonical"`
}

// RouteConfig binds one path prefix to a service. Order in the routes
// list is significant and preserved: the first matching prefix wins.
type RouteConfig struct {
	Prefix  string `mapstructure:"prefix"  validate:"required,startswith=/"`
	Service string `mapstructure:"service" validate:"required"`
}

// RoutingConfig is the complete routing table.
type RoutingConfig struct {
	Routes         []RouteConfig            `mapstructure:"routes"          validate:"dive"`
	IntentDefaults map[string]string        `mapstructure:"intent_defaults"`
	Fallback       string                   `mapstructure:"fallback"`
	Services       map[string]ServiceConfig `mapstructure:"services"        validate:"required,min=1,dive"`
}
