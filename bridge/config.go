package bridge

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/mcpbridge/endpoint"
	"github.com/viant/mcpbridge/identity"
	"github.com/viant/mcpbridge/logger"
	"gopkg.in/yaml.v3"
)

const (
	TransportTCP        = "tcp"
	TransportStdio      = "stdio"
	TransportStreamable = "streamable"

	defaultAddress = "127.0.0.1:4943"
	defaultHost    = "127.0.0.1"
	defaultPort    = 5000
)

// Config is the resolved bridge configuration.
type Config struct {
	EndpointID          string        `yaml:"endpointId"`
	Address             string        `yaml:"address"`
	Identity            string        `yaml:"identity"`
	IdentityURL         string        `yaml:"identityURL"`
	Host                string        `yaml:"host"`
	Port                int           `yaml:"port"`
	Transport           string        `yaml:"transport"`
	CallTimeout         time.Duration `yaml:"callTimeout"`
	TokenExpiry         time.Duration `yaml:"tokenExpiry"`
	Instructions        string        `yaml:"instructions"`
	Validate            *bool         `yaml:"validate"`
	InfoTool            bool          `yaml:"infoTool"`
	MaxFrameSize        int           `yaml:"maxFrameSize"`
	StrictNotifications bool          `yaml:"strictNotifications"`
	RunURL              string        `yaml:"runURL"`
	Cors                *Cors         `yaml:"cors"`
	Logging             logger.Config `yaml:"logging"`
}

// ListenAddress returns host:port of the client facing listener.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%v:%v", c.Host, c.Port)
}

// Init applies defaults and validates the config.
func (c *Config) Init() error {
	if c.EndpointID == "" {
		return fmt.Errorf("endpoint id was empty")
	}
	if c.Address == "" {
		c.Address = defaultAddress
	}
	if c.Identity == "" {
		c.Identity = identity.AnonymousName
	}
	if c.IdentityURL == "" {
		c.IdentityURL = identity.DefaultBaseURL()
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Transport == "" {
		c.Transport = TransportTCP
	}
	switch c.Transport {
	case TransportTCP, TransportStdio, TransportStreamable:
	default:
		return fmt.Errorf("unsupported transport: %v", c.Transport)
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = endpoint.DefaultCallTimeout
	}
	if c.TokenExpiry == 0 {
		c.TokenExpiry = identity.DefaultTokenExpiry
	}
	if c.Validate == nil {
		enabled := true
		c.Validate = &enabled
	}
	if c.RunURL == "" {
		c.RunURL = DefaultRunURL()
	}
	return nil
}

// Merge overrides config values with explicitly set command line options.
func (c *Config) Merge(options *EndpointOptions) {
	if options == nil {
		return
	}
	if options.EndpointID != "" {
		c.EndpointID = options.EndpointID
	}
	if options.Address != "" {
		c.Address = options.Address
	}
	if options.Identity != "" {
		c.Identity = options.Identity
	}
	if options.InfoTool {
		c.InfoTool = true
	}
	if options.Logging.Level != "" {
		c.Logging.Level = options.Logging.Level
	}
	if options.Logging.Console {
		c.Logging.Console = true
	}
}

// LoadConfig reads a YAML config from any afs supported URL.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}

// NewConfig resolves the config for a command: config file first, then command line options.
func NewConfig(ctx context.Context, options *EndpointOptions) (*Config, error) {
	ret := &Config{}
	if options != nil && options.ConfigURL != "" {
		var err error
		if ret, err = LoadConfig(ctx, options.ConfigURL); err != nil {
			return nil, err
		}
	}
	ret.Merge(options)
	return ret, ret.Init()
}

// DefaultHome returns the bridge home directory.
func DefaultHome() string {
	if home := os.Getenv("MCPBRIDGE_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return path.Join(strings.ReplaceAll(home, "\\", "/"), ".mcpbridge")
}

// DefaultRunURL returns the pid file directory.
func DefaultRunURL() string {
	return path.Join(DefaultHome(), "run")
}
