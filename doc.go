// Package mcpbridge exposes procedures of a remote, schema-typed compute endpoint to
// tool-call JSON-RPC clients (initialize, tools/list, tools/call).
//
// The module is organised as follows:
//   - bridge: client facing server (TCP, stdio, streamable HTTP) and the mcpb command line
//   - translator: JSON-RPC method routing and error mapping
//   - discovery: endpoint catalog retrieval through the reserved metadata procedure
//   - endpoint: gRPC endpoint client and the (address, identity) connection pool
//   - identity: Ed25519 identities, bearer tokens and file backed identity store
//   - registry: in-process tool registry with typed registration
//   - host: endpoint side gRPC service serving a registry
//
// Example:
//
//	service, _ := bridge.New(ctx, &bridge.Config{EndpointID: "counter", Address: "127.0.0.1:4943"})
//	defer service.Close()
//	_ = service.Start(ctx)
package mcpbridge
