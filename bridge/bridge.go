// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import (
	"context"
	"errors"
	"fmt"
)

// Invoker sends a named operation to the native engine and waits for
// its outcome. On success the engine's result value is returned as
// CBOR-encoded bytes (empty when the operation produces no value). On
// engine-reported failure the error is an [*InvokeError]. Invocations
// are never retried.
//
// Cancelling the context abandons the wait; the operation itself is
// not cancelled on the engine side — no such primitive exists.
type Invoker interface {
	Invoke(ctx context.Context, operation string, args []any) ([]byte, error)
}

// EventSink receives unsolicited engine notifications. Implementations
// are called from a single dispatch goroutine, one event at a time, in
// arrival order. The payload is the CBOR-encoded event body.
type EventSink interface {
	HandleBridgeEvent(name string, payload []byte)
}

// ErrClosed reports an Invoke on a connection that has shut down.
var ErrClosed = errors.New("bridge: connection closed")

// InvokeError is an operation failure reported by the engine itself,
// as opposed to a transport failure.
type InvokeError struct {
	// Operation is the invoked operation name.
	Operation string

	// Message is the engine's error description. May be empty — some
	// operations fail without detail.
	Message string

	// Payload is the CBOR-encoded failure detail, when the engine
	// supplies one (login failures carry an auth result record here).
	// Empty otherwise.
	Payload []byte
}

func (e *InvokeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bridge: %s failed", e.Operation)
	}
	return fmt.Sprintf("bridge: %s failed: %s", e.Operation, e.Message)
}
