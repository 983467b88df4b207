package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/viant/mcpbridge/bridge"
	"github.com/viant/mcpbridge/host"
	"github.com/viant/mcpbridge/registry"
)

// Runs an endpoint and a bridge in one process, then issues a tools/call through the bridge.
func main() {
	type AddIn struct {
		A    int     `json:"a"`
		B    int     `json:"b"`
		Note *string `json:"note,omitempty" description:"Optional note"`
	}
	type AddOut struct {
		Sum  int    `json:"sum"`
		Note string `json:"note,omitempty"`
	}

	h, err := host.New("calculator", "1.0.0")
	if err != nil {
		log.Fatal(err)
	}
	add, err := registry.NewRegistration[AddIn, *AddOut]("add", "Add two integers", func(ctx context.Context, in *AddIn) (*AddOut, error) {
		out := &AddOut{Sum: in.A + in.B}
		if in.Note != nil {
			out.Note = *in.Note
		}
		return out, nil
	})
	if err != nil {
		log.Fatal(err)
	}
	if err = h.RegisterQuery(add); err != nil {
		log.Fatal(err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatal(err)
	}
	server := h.NewServer()
	go func() { _ = server.Serve(listener) }()
	defer server.Stop()

	identityDir, err := os.MkdirTemp("", "mcpbridge")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(identityDir)
	service, err := bridge.New(context.Background(), &bridge.Config{
		EndpointID:  "calculator",
		Address:     listener.Addr().String(),
		IdentityURL: identityDir,
		RunURL:      identityDir,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer service.Close()

	requests := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add","arguments":{"a":2,"b":3,"note":"demo"}}}`,
	}, "\n") + "\n"
	output := &strings.Builder{}
	service.Server().ServeStdio(context.Background(), strings.NewReader(requests), output)
	for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
		var response map[string]interface{}
		if err = json.Unmarshal([]byte(line), &response); err != nil {
			log.Fatal(err)
		}
		data, _ := json.MarshalIndent(response, "", "  ")
		fmt.Println(string(data))
	}
}
