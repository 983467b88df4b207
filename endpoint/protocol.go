package endpoint

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// Remote wire: every call is a google.protobuf.Struct {endpoint, method, arg} answered with
// a google.protobuf.BytesValue carrying the JSON encoded result. arg holds the compacted JSON
// argument object as a string so numbers reach the endpoint unchanged.
const (
	ServiceName  = "mcpbridge.endpoint.v1.Endpoint"
	QueryMethod  = "/" + ServiceName + "/Query"
	UpdateMethod = "/" + ServiceName + "/Update"
	StatusMethod = "/" + ServiceName + "/Status"

	FieldEndpoint = "endpoint"
	FieldMethod   = "method"
	FieldArg      = "arg"
)

// Kind distinguishes read-only from state changing calls.
type Kind string

const (
	KindQuery  Kind = "query"
	KindUpdate Kind = "update"
)

// FullMethod returns the gRPC method for the call kind.
func (k Kind) FullMethod() string {
	if k == KindUpdate {
		return UpdateMethod
	}
	return QueryMethod
}

// EncodeCall encodes a call into its typed wire form. Arguments must be a JSON object (or empty).
func EncodeCall(endpointID, method string, args json.RawMessage) (*structpb.Struct, error) {
	arg := []byte("{}")
	if trimmed := bytes.TrimSpace(args); len(trimmed) > 0 && string(trimmed) != "null" {
		if trimmed[0] != '{' || !json.Valid(trimmed) {
			return nil, fmt.Errorf("call arguments must be a JSON object: %s", trimmed)
		}
		buffer := bytes.Buffer{}
		if err := json.Compact(&buffer, trimmed); err != nil {
			return nil, fmt.Errorf("failed to encode call arguments: %w", err)
		}
		arg = buffer.Bytes()
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldEndpoint: structpb.NewStringValue(endpointID),
		FieldMethod:   structpb.NewStringValue(method),
		FieldArg:      structpb.NewStringValue(string(arg)),
	}}, nil
}

// DecodeCall decodes a typed call back into endpoint id, method and JSON arguments.
func DecodeCall(call *structpb.Struct) (endpointID string, method string, args json.RawMessage, err error) {
	fields := call.GetFields()
	endpointID = fields[FieldEndpoint].GetStringValue()
	method = fields[FieldMethod].GetStringValue()
	if method == "" {
		return "", "", nil, fmt.Errorf("call method was empty")
	}
	arg := fields[FieldArg].GetStringValue()
	if arg == "" {
		return endpointID, method, json.RawMessage("{}"), nil
	}
	if !json.Valid([]byte(arg)) {
		return "", "", nil, fmt.Errorf("call %v arguments were not valid JSON", method)
	}
	return endpointID, method, json.RawMessage(arg), nil
}
