// Package example contains runnable endpoints used to try the bridge locally.
//
// counter exposes add/get queries and increment/reset updates; example/counter/endpoint
// serves it over gRPC so that `mcpb start --endpoint-id counter` can bridge it.
package example
