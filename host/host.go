package host

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/identity"
	"github.com/viant/mcpbridge/registry"
	"github.com/viant/mcpbridge/schema"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type (
	// Host serves registered procedures as a remote compute endpoint.
	Host struct {
		endpointID string
		version    string
		registry   *registry.Registry
		readOnly   map[string]bool
		mux        sync.RWMutex
		rootKey    ed25519.PublicKey
		anonymous  bool
		logger     zerolog.Logger
	}
)

// EndpointID returns the served endpoint id.
func (h *Host) EndpointID() string {
	return h.endpointID
}

// RootKey returns the public trust material served by Status.
func (h *Host) RootKey() ed25519.PublicKey {
	return h.rootKey
}

// RegisterQuery registers a read-only procedure.
func (h *Host) RegisterQuery(registration registry.Registration) error {
	return h.register(registration, true)
}

// RegisterUpdate registers a state changing procedure.
func (h *Host) RegisterUpdate(registration registry.Registration) error {
	return h.register(registration, false)
}

func (h *Host) register(registration registry.Registration, readOnly bool) error {
	if registration.Name == schema.MetadataProcedure {
		return fmt.Errorf("procedure name %v is reserved", registration.Name)
	}
	h.mux.Lock()
	defer h.mux.Unlock()
	if err := h.registry.Register(registration); err != nil {
		return err
	}
	h.readOnly[registration.Name] = readOnly
	return nil
}

// Metadata returns the endpoint catalog in registration order.
func (h *Host) Metadata() *schema.EndpointMetadata {
	h.mux.RLock()
	defer h.mux.RUnlock()
	ret := &schema.EndpointMetadata{Version: h.version, EndpointID: h.endpointID, Tools: []schema.ToolDescriptor{}}
	for _, registration := range h.registry.Registrations() {
		params := registration.Parameters
		if params == nil {
			params = []schema.ParameterDescriptor{}
		}
		ret.Tools = append(ret.Tools, schema.ToolDescriptor{
			Name:            registration.Name,
			RemoteProcedure: registration.Name,
			ReadOnly:        h.readOnly[registration.Name],
			Description:     registration.Description,
			Parameters:      params,
		})
	}
	return ret
}

// Query implements Service.
func (h *Host) Query(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return h.call(ctx, endpoint.KindQuery, request)
}

// Update implements Service.
func (h *Host) Update(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error) {
	return h.call(ctx, endpoint.KindUpdate, request)
}

// Status implements Service.
func (h *Host) Status(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return wrapperspb.Bytes(h.rootKey), nil
}

func (h *Host) call(ctx context.Context, kind endpoint.Kind, request *structpb.Struct) (*wrapperspb.BytesValue, error) {
	endpointID, method, args, err := endpoint.DecodeCall(request)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if endpointID != h.endpointID {
		return nil, status.Errorf(codes.NotFound, "endpoint %v not found", endpointID)
	}
	logger := h.logger.With().Str("kind", string(kind)).Str("method", method).Str("caller", Caller(ctx)).Logger()
	if method == schema.MetadataProcedure {
		data, err := json.Marshal(h.Metadata())
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return wrapperspb.Bytes(data), nil
	}
	h.mux.RLock()
	readOnly, ok := h.readOnly[method]
	h.mux.RUnlock()
	if !ok {
		return nil, status.Errorf(codes.NotFound, "procedure %v not found", method)
	}
	if kind == endpoint.KindQuery && !readOnly {
		return nil, status.Errorf(codes.FailedPrecondition, "procedure %v is an update and cannot be queried", method)
	}
	result, err := h.registry.Execute(ctx, method, args)
	if err != nil {
		logger.Debug().Err(err).Msg("procedure failed")
		return nil, status.Error(codes.Unknown, err.Error())
	}
	logger.Debug().Msg("procedure executed")
	return wrapperspb.Bytes(result), nil
}

// New creates a host for endpointID.
func New(endpointID, version string, opts ...Option) (*Host, error) {
	if endpointID == "" {
		return nil, fmt.Errorf("endpoint id was empty")
	}
	ret := &Host{
		endpointID: endpointID,
		version:    version,
		registry:   registry.New(),
		readOnly:   map[string]bool{},
		anonymous:  true,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.rootKey == nil {
		root, err := identity.Generate("root")
		if err != nil {
			return nil, err
		}
		ret.rootKey = root.PublicKey()
	}
	return ret, nil
}
