// Package domain defines the core entities that flow through the gateway
// pipeline: the inbound request, its canonicalized form, routing targets,
// backend responses, and the standardized response envelope. It also defines
// the error taxonomy shared by all pipeline stages.
//
// Values in this package carry no behavior beyond construction and simple
// accessors; the pipeline components in internal/language, internal/routing,
// internal/dispatch and internal/gateway operate on them.
package domain
