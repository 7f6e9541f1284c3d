// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import (
	"log/slog"
	"sync"
	"unsafe"
)

// emitter is the listener table shared by Client, Call and Endpoint.
// It is generic over the owner's event-kind type so each owner keeps
// its own closed kind set while the subscription contract stays
// identical.
//
// Handlers are keyed by function identity: registering the same
// function value twice is a no-op, and Off with a handler removes
// exactly that function. Two closures created from the same literal
// are distinct identities.
type emitter[K ~string] struct {
	owner  string
	kinds  map[K]struct{}
	logger *slog.Logger

	mu       sync.Mutex
	handlers map[K]map[uintptr]Handler
}

func newEmitter[K ~string](owner string, kinds []K, logger *slog.Logger) *emitter[K] {
	kindSet := make(map[K]struct{}, len(kinds))
	for _, kind := range kinds {
		kindSet[kind] = struct{}{}
	}
	return &emitter[K]{
		owner:    owner,
		kinds:    kindSet,
		logger:   logger,
		handlers: make(map[K]map[uintptr]Handler),
	}
}

// handlerID returns the identity key for a handler: the address of the
// func value's underlying closure object (the first word of the func
// value). Copies of one func value share it; separate evaluations of a
// literal allocate separate closures and stay distinct. The code
// pointer (reflect's Value.Pointer) would not do: every closure minted
// from one literal shares it.
func handlerID(handler Handler) uintptr {
	return *(*uintptr)(unsafe.Pointer(&handler))
}

// On registers a handler for the event kind. A nil handler or a kind
// outside the owner's set is rejected with a warning — never an error,
// so subscription calls are safe to use defensively.
func (e *emitter[K]) On(kind K, handler Handler) {
	if handler == nil {
		e.logger.Warn("ignoring subscription with nil handler",
			"owner", e.owner, "event", string(kind))
		return
	}
	if _, ok := e.kinds[kind]; !ok {
		e.logger.Warn("ignoring subscription for unknown event kind",
			"owner", e.owner, "event", string(kind))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	set := e.handlers[kind]
	if set == nil {
		set = make(map[uintptr]Handler)
		e.handlers[kind] = set
	}
	set[handlerID(handler)] = handler
}

// Off removes a handler for the event kind; a nil handler removes all
// handlers for that kind. Removing a handler that was never registered
// is a no-op.
func (e *emitter[K]) Off(kind K, handler Handler) {
	e.mu.Lock()
	_, exists := e.handlers[kind]
	e.mu.Unlock()
	if !exists {
		return
	}
	if _, ok := e.kinds[kind]; !ok {
		e.logger.Warn("ignoring unsubscribe for unknown event kind",
			"owner", e.owner, "event", string(kind))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if handler == nil {
		e.handlers[kind] = make(map[uintptr]Handler)
		return
	}
	delete(e.handlers[kind], handlerID(handler))
}

// emit invokes every handler currently registered for the kind, in
// unspecified order. Each handler runs isolated: a panic is recovered
// and logged so the remaining handlers in the same firing still run.
func (e *emitter[K]) emit(kind K, event Event) {
	e.mu.Lock()
	set := e.handlers[kind]
	snapshot := make([]Handler, 0, len(set))
	for _, handler := range set {
		snapshot = append(snapshot, handler)
	}
	e.mu.Unlock()

	for _, handler := range snapshot {
		e.invoke(kind, handler, event)
	}
}

func (e *emitter[K]) invoke(kind K, handler Handler, event Event) {
	defer func() {
		if recovered := recover(); recovered != nil {
			e.logger.Error("event handler panicked",
				"owner", e.owner, "event", string(kind), "panic", recovered)
		}
	}()
	handler(event)
}
