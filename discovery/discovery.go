package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/schema"
)

// Discover queries the reserved metadata procedure of endpointID and returns its validated catalog.
func Discover(ctx context.Context, querier endpoint.Querier, endpointID string) (*schema.EndpointMetadata, error) {
	data, err := querier.Query(ctx, schema.MetadataProcedure, json.RawMessage("{}"))
	if err != nil {
		return nil, &Error{Kind: KindCallFailed, EndpointID: endpointID, Err: err}
	}
	metadata, err := Decode(data)
	if err != nil {
		return nil, &Error{Kind: KindInvalidMetadata, EndpointID: endpointID, Err: err}
	}
	if metadata.EndpointID == "" {
		metadata.EndpointID = endpointID
	}
	if endpointID != "" && metadata.EndpointID != endpointID {
		return nil, &Error{Kind: KindInvalidMetadata, EndpointID: endpointID, Err: fmt.Errorf("metadata describes endpoint %v", metadata.EndpointID)}
	}
	return metadata, nil
}

// Decode parses and validates a metadata document. A JSON string wrapping the document is accepted.
func Decode(data []byte) (*schema.EndpointMetadata, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return nil, err
		}
		data = []byte(text)
	}
	ret := &schema.EndpointMetadata{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
