package endpoint

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/mcpbridge/identity"
)

// Pool caches one connection per (address, identity) pair.
// Lookups share a read lock; construction is serialized under the write lock so that a
// key is never constructed twice. Failed constructions are not cached.
type Pool struct {
	connections map[Key]*Connection
	mux         sync.RWMutex
	resolver    identity.Resolver
	connector   Connector
	logger      zerolog.Logger
}

// Get returns the shared connection for the key, creating it on first use.
// Callers must Release the returned connection when done.
func (p *Pool) Get(ctx context.Context, address, identityName string) (*Connection, error) {
	key := Key{Address: address, Identity: identityName}
	p.mux.RLock()
	if conn, ok := p.connections[key]; ok {
		conn.acquire()
		p.mux.RUnlock()
		return conn, nil
	}
	p.mux.RUnlock()

	p.mux.Lock()
	defer p.mux.Unlock()
	if conn, ok := p.connections[key]; ok {
		conn.acquire()
		return conn, nil
	}
	id, err := p.resolver.Resolve(ctx, identityName)
	if err != nil {
		return nil, &DialError{Stage: DialStageIdentity, Key: key, Err: err}
	}
	conn, err := p.connector.Connect(ctx, key, id)
	if err != nil {
		p.logger.Warn().Err(err).Str("address", address).Str("identity", identityName).Msg("endpoint connection failed")
		return nil, err
	}
	p.connections[key] = conn
	conn.acquire()
	p.logger.Debug().Str("address", address).Str("identity", identityName).Str("principal", id.Principal()).Msg("endpoint connection created")
	return conn, nil
}

// Clear drops all cached connections; each closes once its outstanding checkouts are released.
func (p *Pool) Clear() {
	p.mux.Lock()
	defer p.mux.Unlock()
	for key, conn := range p.connections {
		delete(p.connections, key)
		conn.Release()
	}
}

// Len returns the number of cached connections.
func (p *Pool) Len() int {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return len(p.connections)
}

// NewPool creates a pool.
func NewPool(opts ...Option) *Pool {
	options := newOptions(opts)
	return &Pool{
		connections: make(map[Key]*Connection),
		resolver:    options.Resolver,
		connector:   options.Connector,
		logger:      options.Logger,
	}
}
