// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

// Package voip is the application-facing surface of the Voxline SDK:
// typed, event-driven bindings over the native engine bridge.
//
// [Client] is the session facade. It owns the call registry, performs
// connection and authentication operations, and is the first receiver
// of every engine notification: call-scoped events are routed through
// the registry to the owning [Call], session-scoped events (incoming
// calls, connection and auth results) are dispatched on the Client's
// own listener table. A Client is an explicit object, not a process
// singleton — multiple isolated sessions can coexist, each bound to
// its own bridge.
//
// [Call] represents one telephony session. It owns the set of
// [Endpoint] values (remote participants) and routes inbound call
// events either to its own listeners or to the endpoint the event
// targets. Control operations (Answer, Hangup, SendTone, ...) are thin
// pass-throughs to the engine; Hold is the one operation whose
// asynchronous outcome is surfaced to the caller.
//
// All three stateful types share one subscription contract: On
// registers a handler for an event kind from the owner's closed set,
// Off removes one handler or all handlers for a kind. Malformed calls
// (nil handler, unknown kind) degrade to a logged warning and never
// fail — subscription APIs are safe to use defensively. Handlers for
// one firing run sequentially in unspecified order; a panicking
// handler is isolated so the remaining handlers still run.
//
// Events arrive as typed structs (ConnectedEvent, EndpointAddedEvent,
// ...) constructed fresh from the wire payload. Raw wire identifiers
// (call and endpoint IDs, participant identity fields) never appear on
// emitted events; the corresponding Call or Endpoint back-reference
// takes their place.
//
// Event delivery runs on the bridge's single dispatch goroutine, one
// event at a time, in arrival order. State mutations (endpoint map
// inserts, info updates) happen on that goroutine before the event is
// emitted, so a handler already observes the post-event state — an
// EndpointAdded handler finds the new endpoint in Call.Endpoints.
package voip
