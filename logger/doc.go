// Package logger builds the structured zerolog logger shared by the bridge components.
package logger
