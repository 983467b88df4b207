package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpbridge/schema"
)

// echoHandler answers every request with its method name and delays "slow" requests.
type echoHandler struct {
	mux      sync.Mutex
	requests []string
}

func (h *echoHandler) Handle(ctx context.Context, request *jsonrpc.Request) *jsonrpc.Response {
	h.mux.Lock()
	h.requests = append(h.requests, request.Method)
	h.mux.Unlock()
	if request.Method == "slow" {
		time.Sleep(20 * time.Millisecond)
	}
	result, _ := json.Marshal(map[string]string{"method": request.Method})
	return &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Id: request.Id, Result: result}
}

type frame struct {
	Id     interface{}       `json:"id"`
	Result map[string]string `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func exchange(t *testing.T, server *Server, input string, expect int) []frame {
	client, conn := net.Pipe()
	done := make(chan struct{})
	go func() {
		server.ServeConn(context.Background(), conn)
		close(done)
	}()
	go func() {
		_, _ = client.Write([]byte(input))
	}()
	reader := bufio.NewReader(client)
	var result []frame
	for i := 0; i < expect; i++ {
		line, err := reader.ReadBytes('\n')
		require.NoError(t, err)
		item := frame{}
		require.NoError(t, json.Unmarshal(line, &item), string(line))
		result = append(result, item)
	}
	_ = client.Close()
	<-done
	return result
}

func TestServer_ServeConn(t *testing.T) {
	var testCases = []struct {
		description string
		options     []ServerOption
		input       string
		expect      []frame
	}{
		{
			description: "ordered responses",
			input:       `{"jsonrpc":"2.0","id":1,"method":"slow"}` + "\n" + `{"jsonrpc":"2.0","id":"b","method":"fast"}` + "\n",
			expect: []frame{
				{Id: float64(1), Result: map[string]string{"method": "slow"}},
				{Id: "b", Result: map[string]string{"method": "fast"}},
			},
		},
		{
			description: "blank lines skipped",
			input:       "\n   \n" + `{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n",
			expect:      []frame{{Id: float64(2), Result: map[string]string{"method": "ping"}}},
		},
		{
			description: "frame without id answered with null id",
			input:       `{"jsonrpc":"2.0","method":"tools/list"}` + "\n" + `{"jsonrpc":"2.0","id":3,"method":"ping"}` + "\n",
			expect: []frame{
				{Id: nil, Result: map[string]string{"method": "tools/list"}},
				{Id: float64(3), Result: map[string]string{"method": "ping"}},
			},
		},
		{
			description: "strict notifications suppress response",
			options:     []ServerOption{WithStrictNotifications(true)},
			input:       `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" + `{"jsonrpc":"2.0","id":3,"method":"tools/list"}` + "\n",
			expect:      []frame{{Id: float64(3), Result: map[string]string{"method": "tools/list"}}},
		},
	}
	for _, testCase := range testCases {
		server := NewServer(&echoHandler{}, testCase.options...)
		actual := exchange(t, server, testCase.input, len(testCase.expect))
		for i, expect := range testCase.expect {
			assert.EqualValues(t, expect.Id, actual[i].Id, testCase.description)
			assert.EqualValues(t, expect.Result, actual[i].Result, testCase.description)
			assert.Nil(t, actual[i].Error, testCase.description)
		}
	}
}

func TestServer_MalformedFrames(t *testing.T) {
	var testCases = []struct {
		description string
		options     []ServerOption
		input       string
		code        int
	}{
		{description: "malformed json", input: "{not json\n", code: schema.CodeParseError},
		{description: "not an object", input: "[1,2,3]\n", code: schema.CodeInvalidRequest},
		{description: "scalar", input: "42\n", code: schema.CodeInvalidRequest},
		{
			description: "oversized frame",
			options:     []ServerOption{WithMaxFrameSize(64), WithReadBufferSize(16)},
			input:       `{"jsonrpc":"2.0","id":1,"method":"` + strings.Repeat("x", 200) + `"}` + "\n",
			code:        schema.CodeInvalidRequest,
		},
	}
	for _, testCase := range testCases {
		handler := &echoHandler{}
		server := NewServer(handler, testCase.options...)
		actual := exchange(t, server, testCase.input+`{"jsonrpc":"2.0","id":9,"method":"after"}`+"\n", 2)
		require.NotNil(t, actual[0].Error, testCase.description)
		assert.Equal(t, testCase.code, actual[0].Error.Code, testCase.description)
		assert.Nil(t, actual[0].Id, testCase.description)
		assert.EqualValues(t, 9, actual[1].Id, testCase.description)
		assert.Equal(t, []string{"after"}, handler.requests, testCase.description)
	}
}

func TestServer_Serve(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := NewServer(&echoHandler{})
	served := make(chan error, 1)
	go func() {
		served <- server.Serve(context.Background(), listener)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := net.Dial("tcp", listener.Addr().String())
			if !assert.NoError(t, err) {
				return
			}
			defer conn.Close()
			_, err = conn.Write([]byte(`{"jsonrpc":"2.0","id":` + strings.Repeat("1", i+1) + `,"method":"ping"}` + "\n"))
			assert.NoError(t, err)
			line, err := bufio.NewReader(conn).ReadBytes('\n')
			assert.NoError(t, err)
			item := frame{}
			assert.NoError(t, json.Unmarshal(line, &item))
			assert.Equal(t, "ping", item.Result["method"])
		}(i)
	}
	wg.Wait()

	idle, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	defer idle.Close()

	server.Shutdown()
	select {
	case err = <-served:
		assert.ErrorIs(t, err, ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}
	assert.ErrorIs(t, server.Serve(context.Background(), listener), ErrServerClosed)
}
