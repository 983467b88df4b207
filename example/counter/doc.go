// Package counter is a demo endpoint with query (add, get) and update (increment, reset) procedures.
package counter
