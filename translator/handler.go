package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcpbridge/internal/conv"
	"github.com/viant/mcpbridge/schema"
	"github.com/xeipuuv/gojsonschema"
)

// Serve routes a request and fills response.
func (t *Translator) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	if request.Method == "" {
		response.Error = jsonrpc.NewInvalidRequest("method was empty", nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize:
		t.setResponse(response, t.initialize(), nil)
	case schema.MethodPing, schema.MethodNotificationInitialized, schema.MethodNotificationCancel:
		t.setResponse(response, struct{}{}, nil)
	case schema.MethodToolsList:
		t.setResponse(response, &mcpschema.ListToolsResult{Tools: t.Tools()}, nil)
	case schema.MethodToolsCall:
		result, err := t.callTool(ctx, request)
		t.setResponse(response, result, err)
	default:
		response.Error = schema.NewMethodNotFound(request.Method)
	}
}

func (t *Translator) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	if response.Result, err = json.Marshal(result); err != nil {
		response.Error = schema.NewInternalError(err)
	}
}

func (t *Translator) initialize() *mcpschema.InitializeResult {
	return &mcpschema.InitializeResult{
		ProtocolVersion: mcpschema.LatestProtocolVersion,
		ServerInfo:      t.info,
		Capabilities:    mcpschema.ServerCapabilities{Tools: &mcpschema.ServerCapabilitiesTools{}},
		Instructions:    t.instructions,
	}
}

func (t *Translator) callTool(ctx context.Context, request *jsonrpc.Request) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	if len(request.Params) == 0 {
		return nil, schema.NewInvalidParams("tools/call params were missing")
	}
	params := &schema.CallToolParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, schema.NewInvalidParams("failed to parse: %v", err)
	}
	if params.Name == "" {
		return nil, schema.NewInvalidParams("tool name was empty")
	}
	item, ok := t.byName[params.Name]
	if !ok {
		return nil, schema.NewToolNotFound(params.Name)
	}
	args := params.Arguments
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}
	if err := item.check(args); err != nil {
		return nil, schema.NewInternalError(err)
	}
	logger := t.logger.With().Str("endpoint", t.endpointID).Str("tool", params.Name).Str("id", conv.AsString(request.Id)).Logger()
	started := time.Now()
	data, err := t.dispatch(ctx, item, args)
	if err != nil {
		logger.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("tool call failed")
		return nil, schema.NewInternalError(err)
	}
	text, err := formatResult(data)
	if err != nil {
		logger.Warn().Err(err).Msg("tool result was not JSON")
		return nil, schema.NewInternalError(fmt.Errorf("failed to decode result of tool %v: %w", params.Name, err))
	}
	logger.Debug().Dur("elapsed", time.Since(started)).Msg("tool call completed")
	return schema.NewTextResult(text), nil
}

func (t *Translator) dispatch(ctx context.Context, item *tool, args json.RawMessage) ([]byte, error) {
	procedure := item.descriptor.RemoteProcedure
	switch {
	case item.local:
		return t.local.Execute(ctx, procedure, args)
	case item.descriptor.ReadOnly:
		return t.caller.Query(ctx, procedure, args)
	default:
		return t.caller.Update(ctx, procedure, args)
	}
}

func (t *tool) check(args json.RawMessage) error {
	if t.validator == nil {
		return nil
	}
	result, err := t.validator.Validate(gojsonschema.NewBytesLoader(args))
	if err != nil {
		return fmt.Errorf("invalid arguments for tool %v: %w", t.descriptor.Name, err)
	}
	if result.Valid() {
		return nil
	}
	var messages []string
	for _, item := range result.Errors() {
		messages = append(messages, item.String())
	}
	return fmt.Errorf("invalid arguments for tool %v: %s", t.descriptor.Name, strings.Join(messages, "; "))
}

// formatResult renders a JSON result as indented text; an empty result renders as null.
func formatResult(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "null", nil
	}
	buffer := bytes.Buffer{}
	if err := json.Indent(&buffer, data, "", "  "); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
