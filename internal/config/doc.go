// Package config loads and validates the gateway configuration.
//
// Configuration comes from an optional YAML file and environment
// variables with the AVA_ prefix; environment variables take precedence.
// Everything is loaded once before the first request — there is no
// reload. A missing or invalid routing table is fatal: the gateway must
// not start accepting requests it cannot route.
package config
