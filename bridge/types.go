// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package bridge

import "github.com/voxline/voxline-go/lib/codec"

// frameType discriminates the three message shapes on the engine socket.
type frameType string

const (
	// frameRequest is an SDK→engine operation invocation.
	frameRequest frameType = "request"
	// frameResponse is an engine→SDK outcome for a prior request,
	// matched by correlation ID.
	frameResponse frameType = "response"
	// frameEvent is an unsolicited engine→SDK notification.
	frameEvent frameType = "event"
)

// frame is the single wire message type of the engine socket protocol.
// Which fields are populated depends on Type.
type frame struct {
	Type frameType `cbor:"type"`

	// ID correlates a response with its request. Set on request and
	// response frames.
	ID string `cbor:"id,omitempty"`

	// Operation is the invoked operation name (request frames).
	Operation string `cbor:"operation,omitempty"`

	// Args are the operation arguments in positional order (request
	// frames).
	Args []any `cbor:"args,omitempty"`

	// Name is the event name (event frames).
	Name string `cbor:"name,omitempty"`

	// Payload is the event body on event frames, or the failure
	// detail on failed response frames.
	Payload codec.RawMessage `cbor:"payload,omitempty"`

	// Result is the outcome value on successful response frames.
	Result codec.RawMessage `cbor:"result,omitempty"`

	// Error is the engine's error description on failed response
	// frames. A response frame with a non-empty Error is a failure
	// even when Payload carries detail.
	Error string `cbor:"error,omitempty"`

	// Failed marks a response frame as a failure outcome. Needed
	// because some operations fail without an error description.
	Failed bool `cbor:"failed,omitempty"`
}
