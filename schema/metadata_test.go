package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointMetadata_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		metadata    EndpointMetadata
		expectErr   bool
		duplicate   bool
	}{
		{
			description: "valid",
			metadata: EndpointMetadata{Version: "1", Tools: []ToolDescriptor{
				{Name: "add", RemoteProcedure: "add", ReadOnly: true, Parameters: []ParameterDescriptor{{Name: "a", Type: TypeInteger, Required: true}}},
			}},
		},
		{
			description: "empty catalog",
			metadata:    EndpointMetadata{Version: "1", Tools: []ToolDescriptor{}},
		},
		{
			description: "missing version",
			metadata:    EndpointMetadata{Tools: []ToolDescriptor{}},
			expectErr:   true,
		},
		{
			description: "missing tools",
			metadata:    EndpointMetadata{Version: "1"},
			expectErr:   true,
		},
		{
			description: "missing remote procedure",
			metadata:    EndpointMetadata{Version: "1", Tools: []ToolDescriptor{{Name: "add"}}},
			expectErr:   true,
		},
		{
			description: "invalid type tag",
			metadata: EndpointMetadata{Version: "1", Tools: []ToolDescriptor{
				{Name: "add", RemoteProcedure: "add", Parameters: []ParameterDescriptor{{Name: "a", Type: "decimal"}}},
			}},
			expectErr: true,
		},
		{
			description: "duplicate tool names",
			metadata: EndpointMetadata{Version: "1", Tools: []ToolDescriptor{
				{Name: "add", RemoteProcedure: "add"},
				{Name: "add", RemoteProcedure: "add2"},
			}},
			expectErr: true,
			duplicate: true,
		},
	}
	for _, testCase := range testCases {
		err := testCase.metadata.Validate()
		if !testCase.expectErr {
			assert.Nil(t, err, testCase.description)
			continue
		}
		assert.NotNil(t, err, testCase.description)
		assert.Equal(t, testCase.duplicate, errors.Is(err, ErrDuplicateTool), testCase.description)
	}
}

func TestEndpointMetadata_Lookup(t *testing.T) {
	metadata := EndpointMetadata{Version: "1", Tools: []ToolDescriptor{{Name: "add", RemoteProcedure: "do_add"}}}
	tool, ok := metadata.Lookup("add")
	assert.True(t, ok)
	assert.Equal(t, "do_add", tool.RemoteProcedure)
	_, ok = metadata.Lookup("sub")
	assert.False(t, ok)
}
