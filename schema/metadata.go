package schema

import (
	"errors"
	"fmt"
)

// TypeTag identifies a parameter value kind.
type TypeTag string

const (
	TypeString  TypeTag = "string"
	TypeInteger TypeTag = "integer"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeArray   TypeTag = "array"
	TypeObject  TypeTag = "object"
)

// Valid reports whether t is a known type tag.
func (t TypeTag) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

type (
	// ParameterDescriptor describes a single remote procedure argument.
	ParameterDescriptor struct {
		Name        string  `json:"name" yaml:"name"`
		Type        TypeTag `json:"type" yaml:"type"`
		Required    bool    `json:"required" yaml:"required"`
		Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	}

	// ToolDescriptor describes a tool backed by exactly one remote procedure.
	ToolDescriptor struct {
		Name            string                `json:"name" yaml:"name"`
		RemoteProcedure string                `json:"remoteProcedure" yaml:"remoteProcedure"`
		ReadOnly        bool                  `json:"readOnly" yaml:"readOnly"`
		Description     string                `json:"description,omitempty" yaml:"description,omitempty"`
		Parameters      []ParameterDescriptor `json:"parameters" yaml:"parameters"`
	}

	// EndpointMetadata is the self-describing tool catalog of an endpoint.
	EndpointMetadata struct {
		Version    string           `json:"version" yaml:"version"`
		EndpointID string           `json:"endpointId" yaml:"endpointId"`
		Tools      []ToolDescriptor `json:"tools" yaml:"tools"`
	}
)

// ErrDuplicateTool is returned when a catalog lists the same tool name twice.
var ErrDuplicateTool = errors.New("duplicate tool")

// Validate checks required fields and tool name uniqueness.
func (m *EndpointMetadata) Validate() error {
	if m.Version == "" {
		return fmt.Errorf("metadata version was empty")
	}
	if m.Tools == nil {
		return fmt.Errorf("metadata tools were missing")
	}
	names := make(map[string]bool, len(m.Tools))
	for i := range m.Tools {
		tool := &m.Tools[i]
		if err := tool.Validate(); err != nil {
			return fmt.Errorf("tool[%d]: %w", i, err)
		}
		if names[tool.Name] {
			return fmt.Errorf("%w: %v", ErrDuplicateTool, tool.Name)
		}
		names[tool.Name] = true
	}
	return nil
}

// Lookup returns the tool descriptor with the given name.
func (m *EndpointMetadata) Lookup(name string) (*ToolDescriptor, bool) {
	for i := range m.Tools {
		if m.Tools[i].Name == name {
			return &m.Tools[i], true
		}
	}
	return nil, false
}

// Validate checks the tool and its parameters.
func (t *ToolDescriptor) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name was empty")
	}
	if t.RemoteProcedure == "" {
		return fmt.Errorf("tool %v: remoteProcedure was empty", t.Name)
	}
	seen := make(map[string]bool, len(t.Parameters))
	for _, param := range t.Parameters {
		if param.Name == "" {
			return fmt.Errorf("tool %v: parameter name was empty", t.Name)
		}
		if !param.Type.Valid() {
			return fmt.Errorf("tool %v: parameter %v: unsupported type %q", t.Name, param.Name, param.Type)
		}
		if seen[param.Name] {
			return fmt.Errorf("tool %v: duplicate parameter %v", t.Name, param.Name)
		}
		seen[param.Name] = true
	}
	return nil
}
