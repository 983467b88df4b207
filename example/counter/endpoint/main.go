package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/viant/mcpbridge/example/counter"
	"github.com/viant/mcpbridge/host"
	"github.com/viant/mcpbridge/logger"
)

type options struct {
	EndpointID string        `short:"e" long:"endpoint-id" default:"counter" description:"endpoint id"`
	Address    string        `short:"a" long:"address" default:"127.0.0.1:4943" description:"listen address"`
	Private    bool          `long:"private" description:"reject anonymous callers"`
	Logging    logger.Config `group:"logging"`
}

func main() {
	opts := &options{}
	if _, err := flags.ParseArgs(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
	log := logger.New(&opts.Logging, nil)
	h, _, err := counter.New(opts.EndpointID, host.WithAnonymous(!opts.Private), host.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create endpoint")
	}
	listener, err := net.Listen("tcp", opts.Address)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}
	server := h.NewServer()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()
	log.Info().Str("address", opts.Address).Str("endpoint", opts.EndpointID).Msg("endpoint listening")
	if err = server.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("endpoint stopped")
	}
}
