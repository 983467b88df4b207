package schema

import (
	"fmt"

	"github.com/viant/jsonrpc"
)

// JSON-RPC error codes returned by the bridge.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// NewToolNotFound creates an internal error for an unknown tool name.
func NewToolNotFound(name string) *jsonrpc.Error {
	return jsonrpc.NewInternalError(fmt.Sprintf("tool %v not found", name), nil)
}

// NewMethodNotFound creates a method not found error.
func NewMethodNotFound(method string) *jsonrpc.Error {
	return jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", method), nil)
}

// NewInvalidParams creates an invalid params error.
func NewInvalidParams(format string, args ...interface{}) *jsonrpc.Error {
	return jsonrpc.NewInvalidParamsError(fmt.Sprintf(format, args...), nil)
}

// NewInternalError wraps any downstream failure; the message carries the cause, data stays null.
func NewInternalError(err error) *jsonrpc.Error {
	return jsonrpc.NewInternalError(err.Error(), nil)
}
