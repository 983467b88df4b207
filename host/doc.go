// Package host serves registered procedures as a remote compute endpoint over gRPC.
//
// Every endpoint answers the reserved metadata procedure with its tool catalog, which
// is what the bridge discovers on startup.
package host
