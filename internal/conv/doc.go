// Package conv collects tiny helper functions that are not part of the public API
// but aid internal conversions.
//
// It exposes `AsInt`, which coerces various numeric types into a plain `int`, and
// `AsString`, which renders JSON-RPC request ids for log fields.
package conv
