package host

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/registry"
	"github.com/viant/mcpbridge/schema"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type addInput struct {
	A int `json:"a"`
	B int `json:"b"`
}

func newTestHost(t *testing.T) *Host {
	h, err := New("counter", "1.0.0")
	require.NoError(t, err)
	add, err := registry.NewRegistration[addInput, int]("add", "adds two numbers", func(ctx context.Context, input *addInput) (int, error) {
		return input.A + input.B, nil
	})
	require.NoError(t, err)
	require.NoError(t, h.RegisterQuery(add))
	require.NoError(t, h.RegisterUpdate(registry.Registration{
		Name: "reset",
		Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			return nil, fmt.Errorf("reset is disabled")
		},
	}))
	return h
}

func TestHost_RegisterReserved(t *testing.T) {
	h := newTestHost(t)
	err := h.RegisterQuery(registry.Registration{Name: schema.MetadataProcedure, Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return nil, nil
	}})
	assert.Error(t, err)
	err = h.RegisterUpdate(registry.Registration{Name: "add", Handler: func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
		return nil, nil
	}})
	assert.ErrorIs(t, err, registry.ErrDuplicate)
}

func TestHost_Metadata(t *testing.T) {
	h := newTestHost(t)
	request, err := endpoint.EncodeCall("counter", schema.MetadataProcedure, nil)
	require.NoError(t, err)
	reply, err := h.Query(context.Background(), request)
	require.NoError(t, err)

	metadata := &schema.EndpointMetadata{}
	require.NoError(t, json.Unmarshal(reply.GetValue(), metadata))
	require.NoError(t, metadata.Validate())
	assert.Equal(t, "counter", metadata.EndpointID)
	require.Len(t, metadata.Tools, 2)
	assert.Equal(t, "add", metadata.Tools[0].Name)
	assert.True(t, metadata.Tools[0].ReadOnly)
	assert.Len(t, metadata.Tools[0].Parameters, 2)
	assert.Equal(t, "reset", metadata.Tools[1].Name)
	assert.False(t, metadata.Tools[1].ReadOnly)
}

func TestHost_Call(t *testing.T) {
	h := newTestHost(t)
	var testCases = []struct {
		description string
		kind        endpoint.Kind
		endpointID  string
		method      string
		args        string
		expect      string
		code        codes.Code
	}{
		{description: "query", kind: endpoint.KindQuery, endpointID: "counter", method: "add", args: `{"a":2,"b":3}`, expect: "5"},
		{description: "query as update", kind: endpoint.KindUpdate, endpointID: "counter", method: "add", args: `{"a":1,"b":1}`, expect: "2"},
		{description: "update as query", kind: endpoint.KindQuery, endpointID: "counter", method: "reset", code: codes.FailedPrecondition},
		{description: "handler error", kind: endpoint.KindUpdate, endpointID: "counter", method: "reset", code: codes.Unknown},
		{description: "unknown method", kind: endpoint.KindQuery, endpointID: "counter", method: "missing", code: codes.NotFound},
		{description: "unknown endpoint", kind: endpoint.KindQuery, endpointID: "other", method: "add", code: codes.NotFound},
	}
	for _, testCase := range testCases {
		request, err := endpoint.EncodeCall(testCase.endpointID, testCase.method, json.RawMessage(testCase.args))
		require.NoError(t, err, testCase.description)
		call := h.Query
		if testCase.kind == endpoint.KindUpdate {
			call = h.Update
		}
		reply, err := call(context.Background(), request)
		if testCase.code != codes.OK {
			assert.Equal(t, testCase.code, status.Code(err), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, string(reply.GetValue()), testCase.description)
	}
}

func TestHost_Status(t *testing.T) {
	h := newTestHost(t)
	reply, err := h.Status(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.EqualValues(t, h.RootKey(), reply.GetValue())
}

func TestCaller(t *testing.T) {
	assert.Equal(t, "2vxsx-fae", Caller(context.Background()))
}
