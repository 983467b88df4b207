// Package translator maps tool-call JSON-RPC requests onto the typed calls of a remote endpoint.
//
// A Translator discovers the endpoint catalog once, at construction, and then answers
// initialize, tools/list and tools/call from it. Every request yields exactly one response.
package translator
