package schema

import (
	"encoding/json"

	mcpschema "github.com/viant/mcp-protocol/schema"
)

// CallToolParams are tools/call parameters; arguments stay raw so integer values keep their precision.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// NewTool converts a tool descriptor into its tools/list form.
func NewTool(descriptor *ToolDescriptor) mcpschema.Tool {
	readOnly := descriptor.ReadOnly
	ret := mcpschema.Tool{
		Name:        descriptor.Name,
		InputSchema: NewInputSchema(descriptor.Parameters),
		Annotations: &mcpschema.ToolAnnotations{ReadOnlyHint: &readOnly},
	}
	if descriptor.Description != "" {
		description := descriptor.Description
		ret.Description = &description
	}
	return ret
}

// NewTextResult wraps text as a single text content element.
func NewTextResult(text string) *mcpschema.CallToolResult {
	return &mcpschema.CallToolResult{
		Content: []mcpschema.CallToolResultContentElem{mcpschema.TextContent{Type: "text", Text: text}},
	}
}

// NewCallToolParams builds tools/call parameters from a typed argument value.
func NewCallToolParams[T any](name string, args *T) (*CallToolParams, error) {
	result := &CallToolParams{Name: name}
	if args == nil {
		result.Arguments = json.RawMessage("{}")
		return result, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	result.Arguments = data
	return result, nil
}
