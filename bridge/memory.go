// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/voxline/voxline-go/lib/codec"
)

// Compile-time interface check.
var _ Invoker = (*Memory)(nil)

// OperationFunc scripts one engine operation on a Memory bridge. The
// returned value is CBOR-encoded as the outcome; return an error (or
// an *InvokeError with failure detail) for a failure outcome.
type OperationFunc func(args []any) (any, error)

// Invocation records one Invoke call for test assertions.
type Invocation struct {
	Operation string
	Args      []any
}

// Memory is an in-process bridge for tests and local development.
// Operations without a scripted handler succeed with an empty result.
// Events injected with Emit are delivered to the sink synchronously,
// so a test observes all resulting state changes as soon as Emit
// returns.
type Memory struct {
	mu          sync.Mutex
	handlers    map[string]OperationFunc
	sink        EventSink
	invocations []Invocation
}

// NewMemory creates a Memory bridge with no scripted operations.
func NewMemory() *Memory {
	return &Memory{handlers: make(map[string]OperationFunc)}
}

// SetSink attaches the event sink for Emit.
func (m *Memory) SetSink(sink EventSink) {
	m.mu.Lock()
	m.sink = sink
	m.mu.Unlock()
}

// Handle scripts the outcome of an operation. Calling Handle again for
// the same operation replaces the script.
func (m *Memory) Handle(operation string, fn OperationFunc) {
	m.mu.Lock()
	m.handlers[operation] = fn
	m.mu.Unlock()
}

// Invoke records the invocation and runs the scripted handler.
func (m *Memory) Invoke(_ context.Context, operation string, args []any) ([]byte, error) {
	m.mu.Lock()
	m.invocations = append(m.invocations, Invocation{Operation: operation, Args: args})
	fn := m.handlers[operation]
	m.mu.Unlock()

	if fn == nil {
		return nil, nil
	}

	result, err := fn(args)
	if err != nil {
		var invokeErr *InvokeError
		if errors.As(err, &invokeErr) {
			return nil, invokeErr
		}
		return nil, &InvokeError{Operation: operation, Message: err.Error()}
	}
	if result == nil {
		return nil, nil
	}

	data, err := codec.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("bridge: encoding %s result: %w", operation, err)
	}
	return data, nil
}

// Emit delivers an event to the sink, CBOR-encoding the payload.
// Delivery is synchronous. Emit without a sink is an error — a test
// that forgot to wire the client should fail loudly.
func (m *Memory) Emit(name string, payload any) error {
	m.mu.Lock()
	sink := m.sink
	m.mu.Unlock()

	if sink == nil {
		return fmt.Errorf("bridge: Emit %q with no sink attached", name)
	}

	data, err := codec.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bridge: encoding %s event: %w", name, err)
	}
	sink.HandleBridgeEvent(name, data)
	return nil
}

// Invocations returns a copy of all recorded Invoke calls in order.
func (m *Memory) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.invocations...)
}
