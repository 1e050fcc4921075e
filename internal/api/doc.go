// Package api implements the gateway's inbound HTTP surface: the query
// endpoint, the catch-all proxy handler that feeds the pipeline, the
// farmer directory, and health reporting. Handlers translate between
// HTTP and the domain types; all pipeline logic lives in
// internal/gateway.
package api
