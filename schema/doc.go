// Package schema defines the endpoint catalog data model (parameter, tool and endpoint
// metadata descriptors), the tools/list and tools/call payload shapes, and the mapping
// from parameter type tags to JSON-Schema.
package schema
