// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import (
	"log/slog"
	"sync"
)

// Endpoint is a remote participant in a [Call]. Endpoints are created
// by the SDK when the engine reports them (an incoming call's caller,
// or an EndpointAdded notification) and belong to exactly one Call.
// Retrieve current endpoints with [Call.Endpoints].
type Endpoint struct {
	id     string
	events *emitter[EndpointEventKind]

	mu          sync.Mutex
	displayName string
	sipURI      string
	userName    string
}

func newEndpoint(id, displayName, sipURI, userName string, logger *slog.Logger) *Endpoint {
	kinds := []EndpointEventKind{EndpointEventInfoUpdated, EndpointEventRemoved}
	return &Endpoint{
		id:          id,
		events:      newEmitter("endpoint", kinds, logger),
		displayName: displayName,
		sipURI:      sipURI,
		userName:    userName,
	}
}

// ID is the engine-assigned endpoint identifier, unique within the
// owning call.
func (e *Endpoint) ID() string { return e.id }

// DisplayName is the participant's display name. Updated on
// InfoUpdated events.
func (e *Endpoint) DisplayName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayName
}

// SipURI is the participant's SIP URI. Updated on InfoUpdated events.
func (e *Endpoint) SipURI() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sipURI
}

// UserName is the participant's user name. Updated on InfoUpdated
// events.
func (e *Endpoint) UserName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.userName
}

// On registers a handler for the endpoint event kind. See the package
// documentation for the subscription contract.
func (e *Endpoint) On(kind EndpointEventKind, handler Handler) {
	e.events.On(kind, handler)
}

// Off removes a handler for the endpoint event kind; a nil handler
// removes all handlers for that kind.
func (e *Endpoint) Off(kind EndpointEventKind, handler Handler) {
	e.events.Off(kind, handler)
}

// handleEvent consumes an endpoint-targeted wire event forwarded by
// the owning call. InfoUpdated overwrites the identity fields before
// the event is emitted, so handlers observe the new values.
func (e *Endpoint) handleEvent(kind EndpointEventKind, call *Call, payload *wirePayload) {
	switch kind {
	case EndpointEventInfoUpdated:
		e.mu.Lock()
		e.displayName = payload.DisplayName
		e.sipURI = payload.SipURI
		e.userName = payload.UserName
		e.mu.Unlock()
		e.events.emit(kind, &InfoUpdatedEvent{Call: call, Endpoint: e})
	case EndpointEventRemoved:
		e.events.emit(kind, &RemovedEvent{Call: call, Endpoint: e})
	}
}
