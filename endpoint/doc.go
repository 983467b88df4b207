// Package endpoint implements the remote side client of the bridge: typed query and
// update calls against a compute endpoint over gRPC, and the connection pool that
// amortizes connection setup across calls.
//
// Connections are keyed by (address, identity). The first caller for a key resolves
// the identity, dials, and for loopback endpoints fetches the endpoint root key
// before the connection is handed out. Subsequent callers share the same instance.
package endpoint
