package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Run executes the mcpb command line.
func Run(args []string) error {
	return RunWithOutput(context.Background(), args, os.Stdout)
}

// RunWithOutput executes the command line writing command output to w.
func RunWithOutput(ctx context.Context, args []string, w io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	switch parser.Active.Name {
	case "start":
		return start(ctx, &options.Start, args, w)
	case "stop":
		pid, err := stop(ctx, NewPidFile(options.Stop.RunURL, options.Stop.EndpointID))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "stopped bridge %v (pid %v)\n", options.Stop.EndpointID, pid)
		return err
	case "list":
		return list(ctx, &options.List, w)
	}
	return fmt.Errorf("unsupported command: %v", parser.Active.Name)
}

func start(ctx context.Context, options *StartOptions, args []string, w io.Writer) error {
	config, err := NewConfig(ctx, &options.EndpointOptions)
	if err != nil {
		return err
	}
	if options.Port != 0 {
		config.Port = options.Port
	}
	if options.Host != "" {
		config.Host = options.Host
	}
	if options.Transport != "" {
		config.Transport = options.Transport
	}
	if err = config.Init(); err != nil {
		return err
	}
	if options.Daemon {
		if config.Transport == TransportStdio {
			return fmt.Errorf("stdio transport cannot run as daemon")
		}
		pid, err := daemonize(args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "bridge %v started (pid %v) on %v\n", config.EndpointID, pid, config.ListenAddress())
		return err
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	service, err := New(ctx, config)
	if err != nil {
		return err
	}
	defer service.Close()
	pidFile := NewPidFile(config.RunURL, config.EndpointID)
	if err = pidFile.Write(ctx, os.Getpid()); err != nil {
		return err
	}
	defer func() { _ = pidFile.Remove(context.Background()) }()
	return service.Start(ctx)
}

func list(ctx context.Context, options *ListOptions, w io.Writer) error {
	config, err := NewConfig(ctx, &options.EndpointOptions)
	if err != nil {
		return err
	}
	service, err := New(ctx, config)
	if err != nil {
		return err
	}
	defer service.Close()
	data, err := json.MarshalIndent(&mcpschema.ListToolsResult{Tools: service.Translator().Tools()}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
