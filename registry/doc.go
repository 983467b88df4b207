// Package registry implements the in-process tool registry: a name to handler dispatch
// table with duplicate rejection.
//
// The registry is used on both sides of the wire. The endpoint host dispatches remote
// procedures through it and the bridge uses it for tools served locally next to the
// discovered remote catalog.
//
// Example:
//
//	reg := registry.New()
//	type Addition struct {
//		A int `json:"a"`
//		B int `json:"b"`
//	}
//	_ = registry.RegisterTool[Addition, int](reg, "add", "Add two integers",
//		func(ctx context.Context, in *Addition) (int, error) { return in.A + in.B, nil })
//	out, err := reg.Execute(ctx, "add", json.RawMessage(`{"a":1,"b":2}`))
package registry
