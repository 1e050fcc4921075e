// Package routing maps canonicalized requests to backend route targets.
//
// Resolution is a pure lookup over immutable configuration: an ordered
// path-prefix table consulted first, then an intent-to-service default
// table, then an optional fallback service. A router is built once at
// startup and is safe for unsynchronized concurrent use.
package routing

import (
	"fmt"
	"strings"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// PrefixRoute binds a path prefix to a backend service. The configured
// order of prefix routes is significant: the first matching prefix wins.
type PrefixRoute struct {
	Prefix  string
	Service string
}

// Router resolves canonical requests to route targets.
type Router struct {
	prefixes       []PrefixRoute
	intentDefaults map[domain.Intent]string
	fallback       string
	targets        map[string]domain.RouteTarget
}

// New builds a Router from configured routing data. Every service
// referenced by a prefix route, intent default, or the fallback must
// exist in targets; a dangling reference is a configuration error and
// prevents the gateway from starting.
func New(
	prefixes []PrefixRoute,
	intentDefaults map[domain.Intent]string,
	fallback string,
	targets map[string]domain.RouteTarget,
) (*Router, error) {
	for _, pr := range prefixes {
		if !strings.HasPrefix(pr.Prefix, "/") {
			return nil, fmt.Errorf("route prefix %q must start with /", pr.Prefix)
		}
		if _, ok := targets[pr.Service]; !ok {
			return nil, fmt.Errorf("route prefix %q references unknown service %q", pr.Prefix, pr.Service)
		}
	}
	for intent, svc := range intentDefaults {
		if _, ok := targets[svc]; !ok {
			return nil, fmt.Errorf("intent %q references unknown service %q", intent, svc)
		}
	}
	if fallback != "" {
		if _, ok := targets[fallback]; !ok {
			return nil, fmt.Errorf("fallback references unknown service %q", fallback)
		}
	}

	// Copy all configured tables so later mutation of the caller's
	// config cannot change routing behavior.
	prefixCopy := make([]PrefixRoute, len(prefixes))
	copy(prefixCopy, prefixes)
	defaultsCopy := make(map[domain.Intent]string, len(intentDefaults))
	for intent, svc := range intentDefaults {
		defaultsCopy[intent] = svc
	}
	targetsCopy := make(map[string]domain.RouteTarget, len(targets))
	for name, t := range targets {
		targetsCopy[name] = t
	}

	return &Router{
		prefixes:       prefixCopy,
		intentDefaults: defaultsCopy,
		fallback:       fallback,
		targets:        targetsCopy,
	}, nil
}

// Resolve returns the route target for a canonical request.
//
// The primary lookup walks the prefix table in configured order; the
// first matching prefix wins. If no prefix matches, the detected intent
// selects a default service. An unknown intent, or an intent with no
// configured default, falls back to the fallback service when one is
// configured. When nothing resolves, Resolve returns
// domain.ErrNoRouteFound; the caller must surface it as a user-visible
// error, never as a silent default.
func (r *Router) Resolve(canonical domain.CanonicalRequest) (domain.RouteTarget, error) {
	for _, pr := range r.prefixes {
		if strings.HasPrefix(canonical.Path, pr.Prefix) {
			return r.targets[pr.Service], nil
		}
	}

	if svc, ok := r.intentDefaults[canonical.Intent]; ok {
		return r.targets[svc], nil
	}

	if r.fallback != "" {
		return r.targets[r.fallback], nil
	}

	return domain.RouteTarget{}, fmt.Errorf(
		"%w: path=%s intent=%s", domain.ErrNoRouteFound, canonical.Path, canonical.Intent)
}

// Target returns the configured target for a service identifier. Used by
// health reporting; request routing always goes through Resolve.
func (r *Router) Target(service string) (domain.RouteTarget, bool) {
	t, ok := r.targets[service]
	return t, ok
}
