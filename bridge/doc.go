// Package bridge exposes a remote compute endpoint to tool-call JSON-RPC clients.
//
// A Server runs one read, translate, write loop per client connection over newline
// delimited JSON frames (TCP or stdio); the streamable HTTP transport is served through
// github.com/viant/jsonrpc. Run implements the mcpb command line (start, stop, list).
package bridge
