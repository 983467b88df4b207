package host

import (
	"context"
	"strings"

	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/identity"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service is the endpoint gRPC service contract.
type Service interface {
	Query(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error)
	Update(ctx context.Context, request *structpb.Struct) (*wrapperspb.BytesValue, error)
	Status(ctx context.Context, request *emptypb.Empty) (*wrapperspb.BytesValue, error)
}

type callerKey struct{}

// Caller returns the authenticated caller principal, or the anonymous principal.
func Caller(ctx context.Context) string {
	if principal, ok := ctx.Value(callerKey{}).(string); ok {
		return principal
	}
	return identity.AnonymousPrincipal
}

func structHandler(call func(srv Service, ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error), fullMethod string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &structpb.Struct{}
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(Service), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(Service), ctx, req.(*structpb.Struct))
		})
	}
}

// ServiceDesc describes the endpoint service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: endpoint.ServiceName,
	HandlerType: (*Service)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Query",
			Handler: structHandler(func(srv Service, ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error) {
				return srv.Query(ctx, in)
			}, endpoint.QueryMethod),
		},
		{
			MethodName: "Update",
			Handler: structHandler(func(srv Service, ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error) {
				return srv.Update(ctx, in)
			}, endpoint.UpdateMethod),
		},
		{
			MethodName: "Status",
			Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
				in := &emptypb.Empty{}
				if err := dec(in); err != nil {
					return nil, err
				}
				if interceptor == nil {
					return srv.(Service).Status(ctx, in)
				}
				info := &grpc.UnaryServerInfo{Server: srv, FullMethod: endpoint.StatusMethod}
				return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
					return srv.(Service).Status(ctx, req.(*emptypb.Empty))
				})
			},
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mcpbridge/endpoint/v1/endpoint.proto",
}

// authenticate resolves the bearer token into the caller principal.
func (h *Host) authenticate(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == endpoint.StatusMethod {
		return handler(ctx, req)
	}
	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(identity.AuthorizationKey); len(values) > 0 {
			token = strings.TrimSpace(strings.TrimPrefix(values[0], "Bearer "))
		}
	}
	if token == "" {
		if !h.anonymous {
			return nil, status.Error(codes.Unauthenticated, "anonymous callers are not allowed")
		}
		return handler(ctx, req)
	}
	principal, err := identity.Verify(ctx, token, "")
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	return handler(context.WithValue(ctx, callerKey{}, principal), req)
}

// Register registers the endpoint and health services.
func (h *Host) Register(registrar grpc.ServiceRegistrar) {
	registrar.RegisterService(&ServiceDesc, h)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(endpoint.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(registrar, healthServer)
}

// NewServer returns a gRPC server with the endpoint registered.
func (h *Host) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	options := append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(h.authenticate),
	}, opts...)
	server := grpc.NewServer(options...)
	h.Register(server)
	return server
}
