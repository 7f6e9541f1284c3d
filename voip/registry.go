// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import "sync"

// callRegistry maps engine call identifiers to live Call objects so
// that call-scoped events reach the session they belong to. Each
// Client owns exactly one registry; two clients never share calls.
type callRegistry struct {
	mu    sync.Mutex
	calls map[string]*Call
}

func newCallRegistry() *callRegistry {
	return &callRegistry{calls: make(map[string]*Call)}
}

// register adds a call under its identifier. Registering a second call
// under the same identifier replaces the first; the engine never
// reuses identifiers within a session.
func (r *callRegistry) register(call *Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[call.ID()] = call
}

// lookup returns the call registered under the identifier, nil if none.
func (r *callRegistry) lookup(callID string) *Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[callID]
}

// route delivers a call-scoped wire event to its call. An event whose
// call identifier is unknown is dropped silently, no diagnostic: the
// engine may still flush notifications for a session the application
// has let go of, and that race is benign.
func (r *callRegistry) route(wireName string, payload *wirePayload) {
	call := r.lookup(payload.CallID)
	if call == nil {
		return
	}
	call.handleEvent(wireName, payload)
}
