// Package gateway orchestrates the per-request pipeline and builds the
// standardized response envelope.
//
// The Controller owns the request lifecycle: Received → Normalized →
// Routed → Dispatched → Enveloped. Each transition is one component
// call; a routing failure short-circuits straight to the envelope stage.
// Every inbound request yields exactly one GatewayEnvelope — there is no
// silent drop, and all taxonomy errors are recovered locally rather than
// terminating the process.
package gateway
