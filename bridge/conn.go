// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/voxline/voxline-go/lib/codec"
)

// Compile-time interface check.
var _ Invoker = (*Conn)(nil)

// ConnConfig holds configuration for creating a Conn.
type ConnConfig struct {
	// Conn is the established connection to the engine process.
	// Required.
	Conn net.Conn

	// Sink receives engine event frames. May be nil; events arriving
	// while no sink is set are dropped with a debug log. Use
	// [Conn.SetSink] to attach a sink after construction — the usual
	// order is NewConn, then build the client on top of it, then
	// SetSink(client).
	Sink EventSink

	// Logger receives structured log output. If nil, slog.Default()
	// is used. Per-frame events are logged at Debug level; lifecycle
	// and errors at Info/Error.
	Logger *slog.Logger
}

// Conn is a bridge connection to the engine over a CBOR frame stream.
// It is safe for concurrent Invoke calls; event delivery happens on a
// single internal goroutine.
type Conn struct {
	conn   net.Conn
	logger *slog.Logger

	writeMu sync.Mutex
	encoder *codec.Encoder

	mu      sync.Mutex
	sink    EventSink
	pending map[string]chan frame
	closed  bool

	done chan struct{}
}

// NewConn wraps an established connection to the engine and starts the
// frame reader. The caller must call Close when done.
func NewConn(config ConnConfig) (*Conn, error) {
	if config.Conn == nil {
		return nil, fmt.Errorf("bridge: Conn is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Conn{
		conn:    config.Conn,
		logger:  logger,
		encoder: codec.NewEncoder(config.Conn),
		sink:    config.Sink,
		pending: make(map[string]chan frame),
		done:    make(chan struct{}),
	}
	go c.readLoop()

	logger.Debug("bridge connection started", "remote", config.Conn.RemoteAddr())
	return c, nil
}

// Dial connects to the engine socket ("unix" or "tcp") and returns a
// running Conn.
func Dial(ctx context.Context, network, address string, config ConnConfig) (*Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("bridge: dial %s %s: %w", network, address, err)
	}
	config.Conn = conn
	return NewConn(config)
}

// SetSink attaches the event sink. Events that arrived before the sink
// was set are dropped, not queued — the engine does not emit events
// before the first operation is invoked.
func (c *Conn) SetSink(sink EventSink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

// Invoke sends the operation to the engine and blocks until its
// outcome arrives, the context is cancelled, or the connection shuts
// down.
func (c *Conn) Invoke(ctx context.Context, operation string, args []any) ([]byte, error) {
	id := uuid.NewString()
	outcome := make(chan frame, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = outcome
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.send(frame{Type: frameRequest, ID: id, Operation: operation, Args: args}); err != nil {
		return nil, fmt.Errorf("bridge: sending %s request: %w", operation, err)
	}

	select {
	case response := <-outcome:
		if response.Failed || response.Error != "" {
			return nil, &InvokeError{
				Operation: operation,
				Message:   response.Error,
				Payload:   response.Payload,
			}
		}
		return response.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

// Close shuts the connection down. In-flight Invoke calls fail with
// ErrClosed.
func (c *Conn) Close() error {
	err := c.conn.Close()
	c.Wait()
	return err
}

// Wait blocks until the reader goroutine has stopped.
func (c *Conn) Wait() {
	<-c.done
}

func (c *Conn) send(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.encoder.Encode(f)
}

// readLoop decodes frames until the connection fails or closes.
// Responses are handed to their waiting Invoke call; events go to the
// sink synchronously, so delivery order matches arrival order and no
// two events overlap.
func (c *Conn) readLoop() {
	defer close(c.done)

	decoder := codec.NewDecoder(c.conn)
	for {
		var f frame
		if err := decoder.Decode(&f); err != nil {
			c.shutdown(err)
			return
		}

		switch f.Type {
		case frameResponse:
			c.mu.Lock()
			waiter, ok := c.pending[f.ID]
			delete(c.pending, f.ID)
			c.mu.Unlock()
			if !ok {
				// The waiter gave up (context cancelled) before the
				// outcome arrived.
				c.logger.Debug("bridge response with no waiter", "id", f.ID)
				continue
			}
			waiter <- f
		case frameEvent:
			c.mu.Lock()
			sink := c.sink
			c.mu.Unlock()
			if sink == nil {
				c.logger.Debug("bridge event with no sink", "event", f.Name)
				continue
			}
			sink.HandleBridgeEvent(f.Name, f.Payload)
		default:
			c.logger.Debug("bridge frame with unknown type", "type", string(f.Type))
		}
	}
}

// shutdown marks the connection closed. A clean close (local Close or
// engine EOF) is logged at Info; anything else is an error.
func (c *Conn) shutdown(err error) {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.conn.Close()

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		c.logger.Info("bridge connection closed")
		return
	}
	c.logger.Error("bridge connection failed", "error", err)
}
