package bridge

import (
	"context"
	"io"
)

type stdioConn struct {
	io.Reader
	io.Writer
}

func (c *stdioConn) Close() error {
	if closer, ok := c.Reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ServeStdio runs the frame loop over a line based pipe such as stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) {
	s.ServeConn(ctx, &stdioConn{Reader: in, Writer: out})
}
