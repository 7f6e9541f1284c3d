// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge connects the SDK to the native Voxline engine process.
//
// The engine does all real telephony work — signaling, media transport,
// authentication against the cloud. The SDK only marshals operations to
// it and receives its asynchronous notifications. Two interfaces define
// the boundary: [Invoker] sends a named operation with arguments and
// blocks until the engine reports an outcome, and [EventSink] receives
// unsolicited engine notifications (incoming calls, call state changes,
// endpoint updates).
//
// [Conn] is the production implementation: a CBOR frame stream over a
// net.Conn (Unix socket or TCP) to the engine. Requests carry a UUID
// correlation ID; a single reader goroutine routes response frames to
// the waiting Invoke call and delivers event frames to the sink one at
// a time, in arrival order. That single goroutine is the serialization
// point the SDK's session-state tracking relies on: no two events are
// ever delivered concurrently.
//
// Engine-reported operation failures are returned as [*InvokeError],
// carrying the engine's error string and any CBOR failure detail.
// Transport-level failures (closed socket, cancelled context) are
// returned as ordinary wrapped errors; [ErrClosed] reports invocation
// on a connection that has shut down.
//
// [Memory] is an in-process implementation for tests and local
// development: operations are scripted with handler functions and
// events are injected synchronously with Emit.
package bridge
