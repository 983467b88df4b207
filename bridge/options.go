package bridge

import (
	"github.com/viant/mcpbridge/logger"
)

// Options are the mcpb command line options.
type Options struct {
	Start StartOptions `command:"start" description:"start the bridge for an endpoint"`
	Stop  StopOptions  `command:"stop" description:"stop a running bridge"`
	List  ListOptions  `command:"list" description:"list tools exposed by an endpoint"`
}

// EndpointOptions select the bridged endpoint.
type EndpointOptions struct {
	EndpointID string        `short:"e" long:"endpoint-id" env:"MCPBRIDGE_ENDPOINT_ID" description:"remote endpoint id"`
	Address    string        `short:"a" long:"address" env:"MCPBRIDGE_ADDRESS" description:"remote endpoint address host:port"`
	Identity   string        `short:"i" long:"identity" env:"MCPBRIDGE_IDENTITY" description:"identity name used for endpoint calls"`
	ConfigURL  string        `short:"c" long:"config" description:"bridge config file URL (yaml)"`
	InfoTool   bool          `long:"info-tool" description:"expose the bridge_info tool"`
	Logging    logger.Config `group:"logging"`
}

// StartOptions start a bridge.
type StartOptions struct {
	EndpointOptions
	Port      int    `short:"p" long:"port" description:"bridge listen port"`
	Host      string `long:"host" description:"bridge listen host"`
	Transport string `short:"t" long:"transport" choice:"tcp" choice:"stdio" choice:"streamable" description:"client transport"`
	Daemon    bool   `short:"d" long:"daemon" description:"run in background"`
}

// StopOptions stop a daemonized bridge.
type StopOptions struct {
	EndpointID string `short:"e" long:"endpoint-id" env:"MCPBRIDGE_ENDPOINT_ID" required:"true" description:"remote endpoint id"`
	RunURL     string `long:"run-url" description:"pid file directory URL"`
}

// ListOptions print the tools an endpoint exposes.
type ListOptions struct {
	EndpointOptions
}
