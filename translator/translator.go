package translator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpbridge/discovery"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/registry"
	"github.com/viant/mcpbridge/schema"
	"github.com/xeipuuv/gojsonschema"
)

type (
	// Translator converts tool-call JSON-RPC requests into endpoint calls.
	// It is immutable after construction and safe for concurrent use.
	Translator struct {
		endpointID   string
		caller       endpoint.Caller
		metadata     *schema.EndpointMetadata
		local        *registry.Registry
		tools        []*tool
		byName       map[string]*tool
		info         mcpschema.Implementation
		instructions *string
		validate     bool
		logger       zerolog.Logger
	}

	tool struct {
		descriptor schema.ToolDescriptor
		entry      mcpschema.Tool
		validator  *gojsonschema.Schema
		local      bool
	}
)

// EndpointID returns the bridged endpoint id.
func (t *Translator) EndpointID() string {
	return t.endpointID
}

// Metadata returns the discovered endpoint catalog.
func (t *Translator) Metadata() *schema.EndpointMetadata {
	return t.metadata
}

// Tools returns the tools/list entries, remote tools first.
func (t *Translator) Tools() []mcpschema.Tool {
	result := make([]mcpschema.Tool, 0, len(t.tools))
	for _, item := range t.tools {
		result = append(result, item.entry)
	}
	return result
}

func (t *Translator) addTool(descriptor schema.ToolDescriptor, local bool) error {
	if _, ok := t.byName[descriptor.Name]; ok {
		return fmt.Errorf("%w: %v", schema.ErrDuplicateTool, descriptor.Name)
	}
	ret := &tool{descriptor: descriptor, entry: schema.NewTool(&descriptor), local: local}
	if t.validate {
		validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema.NewValidationSchema(descriptor.Parameters)))
		if err != nil {
			return fmt.Errorf("tool %v: invalid argument schema: %w", descriptor.Name, err)
		}
		ret.validator = validator
	}
	t.tools = append(t.tools, ret)
	t.byName[descriptor.Name] = ret
	return nil
}

// New discovers the endpoint catalog through caller and returns a translator serving it.
func New(ctx context.Context, caller endpoint.Caller, endpointID string, opts ...Option) (*Translator, error) {
	ret := &Translator{
		endpointID: endpointID,
		caller:     caller,
		byName:     map[string]*tool{},
		info:       mcpschema.Implementation{Name: "mcp-bridge", Version: "0.1"},
		validate:   true,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	metadata, err := discovery.Discover(ctx, caller, endpointID)
	if err != nil {
		return nil, err
	}
	ret.metadata = metadata
	for _, descriptor := range metadata.Tools {
		if err = ret.addTool(descriptor, false); err != nil {
			return nil, err
		}
	}
	if ret.local != nil {
		for _, registration := range ret.local.Registrations() {
			descriptor := schema.ToolDescriptor{
				Name:            registration.Name,
				RemoteProcedure: registration.Name,
				ReadOnly:        true,
				Description:     registration.Description,
				Parameters:      registration.Parameters,
			}
			if err = ret.addTool(descriptor, true); err != nil {
				return nil, err
			}
		}
	}
	ret.logger.Info().Str("endpoint", endpointID).Str("version", metadata.Version).Int("tools", len(ret.tools)).Msg("endpoint metadata discovered")
	return ret, nil
}

// Handle translates one request; the response always echoes the request id.
func (t *Translator) Handle(ctx context.Context, request *jsonrpc.Request) *jsonrpc.Response {
	response := &jsonrpc.Response{Id: request.Id, Jsonrpc: jsonrpc.Version}
	t.Serve(ctx, request, response)
	return response
}
