// Package discovery fetches the tool catalog an endpoint publishes through its reserved metadata procedure.
package discovery
