package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcpbridge/internal/collection"
)

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = errors.New("bridge: server closed")

type (
	// Handler translates one request into exactly one response.
	Handler interface {
		Handle(ctx context.Context, request *jsonrpc.Request) *jsonrpc.Response
	}

	// Server runs the per-connection read, translate, write loop over newline delimited JSON frames.
	Server struct {
		handler   Handler
		logger    zerolog.Logger
		options   *ServerOptions
		wg        conc.WaitGroup
		mux       sync.Mutex
		closed    bool
		listeners map[net.Listener]struct{}
		conns     *collection.SyncMap[string, io.Closer]
	}
)

// Serve accepts connections until the listener fails or the server is shut down.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if !s.trackListener(listener) {
		return ErrServerClosed
	}
	defer s.untrackListener(listener)
	s.logger.Info().Str("address", listener.Addr().String()).Msg("bridge listening")
	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			return err
		}
		s.mux.Lock()
		if s.closed {
			s.mux.Unlock()
			_ = conn.Close()
			return ErrServerClosed
		}
		s.wg.Go(func() {
			s.ServeConn(ctx, conn)
		})
		s.mux.Unlock()
	}
}

// ServeConn runs the frame loop on a single client connection and closes it on return.
func (s *Server) ServeConn(ctx context.Context, conn io.ReadWriteCloser) {
	id := uuid.New().String()
	logger := s.logger.With().Str("conn", id).Logger()
	s.conns.Put(id, conn)
	defer func() {
		s.conns.Delete(id)
		_ = conn.Close()
		logger.Debug().Msg("connection closed")
	}()
	if s.isClosed() {
		return
	}
	logger.Debug().Msg("connection accepted")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	reader := bufio.NewReaderSize(conn, s.options.ReadBufferSize)
	writer := bufio.NewWriter(conn)
	for {
		frame, oversized, readErr := readFrame(reader, s.options.MaxFrameSize)
		var response *jsonrpc.Response
		switch {
		case oversized:
			response = errorResponse(jsonrpc.NewInvalidRequest(fmt.Sprintf("frame exceeds %d bytes", s.options.MaxFrameSize), nil))
			logger.Debug().Int("limit", s.options.MaxFrameSize).Msg("oversized frame discarded")
		default:
			if frame = bytes.TrimSpace(frame); len(frame) > 0 {
				response = s.handleFrame(ctx, frame, logger)
			}
		}
		if response != nil {
			if err := writeFrame(writer, response); err != nil {
				logger.Debug().Err(err).Msg("failed to write response")
				return
			}
		}
		if readErr != nil {
			if readErr != io.EOF && !s.isClosed() && !errors.Is(readErr, net.ErrClosed) {
				logger.Warn().Err(readErr).Msg("failed to read frame")
			}
			return
		}
	}
}

func (s *Server) handleFrame(ctx context.Context, frame []byte, logger zerolog.Logger) *jsonrpc.Response {
	request, notification, response := decodeRequest(frame)
	if response != nil {
		logger.Debug().Interface("code", response.Error.Code).Msg(response.Error.Message)
		return response
	}
	response = s.handler.Handle(ctx, request)
	if notification && s.options.StrictNotifications {
		return nil
	}
	return response
}

func writeFrame(writer *bufio.Writer, response *jsonrpc.Response) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}
	if _, err = writer.Write(append(data, '\n')); err != nil {
		return err
	}
	return writer.Flush()
}

// Shutdown stops accepting, closes open connections and waits for connection loops to return.
func (s *Server) Shutdown() {
	s.mux.Lock()
	s.closed = true
	for listener := range s.listeners {
		_ = listener.Close()
	}
	s.mux.Unlock()
	s.conns.Range(func(_ string, conn io.Closer) bool {
		_ = conn.Close()
		return true
	})
	s.wg.Wait()
}

func (s *Server) isClosed() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.closed
}

func (s *Server) trackListener(listener net.Listener) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return false
	}
	s.listeners[listener] = struct{}{}
	return true
}

func (s *Server) untrackListener(listener net.Listener) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.listeners, listener)
}

// NewServer creates a server dispatching frames to handler.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	options := newServerOptions(opts)
	return &Server{
		handler:   handler,
		logger:    options.Logger,
		options:   options,
		listeners: map[net.Listener]struct{}{},
		conns:     collection.NewSyncMap[string, io.Closer](),
	}
}
