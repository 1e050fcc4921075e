package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// defaultTimeout is applied to services that configure no timeout of
// their own. It matches the budget the legacy UI bridge allowed a
// gateway call.
const defaultTimeout = 30 * time.Second

// Load reads configuration from ./config.yaml (when present) and AVA_*
// environment variables, environment taking precedence, then validates
// the result. Returns a populated Config or an error; a load error at
// startup is fatal and must prevent the gateway from accepting requests.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but searches the given directory for the
// config file. Used by tests.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("language.default_locale", "hr")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("AVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so keys
	// without a default or file entry must be bound explicitly for
	// Unmarshal to see their env values.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"language.default_locale",
		"routing.fallback",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine; env vars may still provide everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for name, svc := range cfg.Routing.Services {
		if svc.Timeout == 0 {
			svc.Timeout = defaultTimeout
			cfg.Routing.Services[name] = svc
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateRouting(cfg.Routing); err != nil {
		return nil, fmt.Errorf("invalid routing table: %w", err)
	}

	return &cfg, nil
}

// validateRouting enforces the cross-field rules the struct tags cannot
// express: every referenced service must exist, and at least one
// resolution path (prefix route, intent default, or fallback) must be
// configured.
func validateRouting(r RoutingConfig) error {
	if len(r.Routes) == 0 && len(r.IntentDefaults) == 0 && r.Fallback == "" {
		return errors.New("no routes, intent defaults, or fallback configured")
	}
	for _, route := range r.Routes {
		if _, ok := r.Services[route.Service]; !ok {
			return fmt.Errorf("route %q references unknown service %q", route.Prefix, route.Service)
		}
	}
	for intent, svc := range r.IntentDefaults {
		if _, ok := r.Services[svc]; !ok {
			return fmt.Errorf("intent default %q references unknown service %q", intent, svc)
		}
	}
	if r.Fallback != "" {
		if _, ok := r.Services[r.Fallback]; !ok {
			return fmt.Errorf("fallback references unknown service %q", r.Fallback)
		}
	}
	return nil
}
