// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/voxline/voxline-go/bridge"
)

// Call is one call session, incoming or outgoing. Calls are created by
// the SDK only: [Client.Call] for outgoing calls, the IncomingCall
// event for incoming ones.
//
// Call control methods other than [Call.Hold] are fire-and-forget:
// they hand the operation to the engine and return immediately, and
// the outcome surfaces as call events (Connected, Disconnected,
// Failed). A rejected operation is logged at debug level.
type Call struct {
	id             string
	invoker        bridge.Invoker
	logger         *slog.Logger
	events         *emitter[CallEventKind]
	evictOnRemoved bool

	mu        sync.Mutex
	endpoints map[string]*Endpoint

	opMu      sync.Mutex
	opQueue   []pendingOp
	opRunning bool
}

// pendingOp is one queued fire-and-forget control operation.
type pendingOp struct {
	operation string
	args      []any
}

var callEventKinds = []CallEventKind{
	CallEventConnected,
	CallEventDisconnected,
	CallEventEndpointAdded,
	CallEventFailed,
	CallEventCallOperationFailed,
	CallEventICECompleted,
	CallEventICETimeout,
	CallEventInfoReceived,
	CallEventMessageReceived,
	CallEventProgressToneStart,
	CallEventProgressToneStop,
}

// newCall wraps an engine call session. endpoint is the initial remote
// party when the engine reported one (incoming calls), nil otherwise.
func newCall(id string, endpoint *Endpoint, invoker bridge.Invoker, logger *slog.Logger, evictOnRemoved bool) *Call {
	call := &Call{
		id:             id,
		invoker:        invoker,
		logger:         logger,
		events:         newEmitter("call", callEventKinds, logger),
		evictOnRemoved: evictOnRemoved,
		endpoints:      make(map[string]*Endpoint),
	}
	if endpoint != nil {
		call.endpoints[endpoint.ID()] = endpoint
	}
	return call
}

// ID is the engine-assigned call identifier.
func (c *Call) ID() string { return c.id }

// Endpoints returns the call's current remote participants.
func (c *Call) Endpoints() []*Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	endpoints := make([]*Endpoint, 0, len(c.endpoints))
	for _, endpoint := range c.endpoints {
		endpoints = append(endpoints, endpoint)
	}
	return endpoints
}

// On registers a handler for the call event kind. See the package
// documentation for the subscription contract.
func (c *Call) On(kind CallEventKind, handler Handler) {
	c.events.On(kind, handler)
}

// Off removes a handler for the call event kind; a nil handler removes
// all handlers for that kind.
func (c *Call) Off(kind CallEventKind, handler Handler) {
	c.events.Off(kind, handler)
}

// Answer accepts an incoming call. nil settings means
// [DefaultCallSettings]. Success surfaces as the Connected event.
func (c *Call) Answer(settings *CallSettings) {
	c.invokeAsync("answer", c.id, mergeCallSettings(settings))
}

// Decline declines an incoming call with SIP code 603. Other devices
// ringing for the same call stop ringing.
func (c *Call) Decline(headers map[string]string) {
	c.invokeAsync("decline", c.id, headers)
}

// Reject rejects an incoming call with SIP code 486 Busy Here. Other
// devices ringing for the same call keep ringing.
func (c *Call) Reject(headers map[string]string) {
	c.invokeAsync("reject", c.id, headers)
}

// SendAudio starts or stops sending audio on the call.
func (c *Call) SendAudio(enable bool) {
	c.invokeAsync("sendAudio", c.id, enable)
}

// SendTone sends a DTMF tone, in-band and as a SIP INFO message. Valid
// keys are 0-9, *, # and A-D.
func (c *Call) SendTone(key string) {
	c.invokeAsync("sendTone", c.id, key)
}

// Hangup terminates the call. The end of the call surfaces as the
// Disconnected event.
func (c *Call) Hangup(headers map[string]string) {
	c.invokeAsync("hangup", c.id, headers)
}

// SendMessage sends a text message to the other call parties.
func (c *Call) SendMessage(text string) {
	c.invokeAsync("sendMessage", c.id, text)
}

// SendInfo sends a SIP INFO message with the given MIME type and body.
func (c *Call) SendInfo(mimeType, body string, headers map[string]string) {
	c.invokeAsync("sendInfo", c.id, wireInfo{Type: mimeType, Body: body, Headers: headers})
}

// Hold places the call on hold or takes it off hold. Unlike the other
// call control methods the outcome is returned: the engine reports
// hold failures without detail, surfaced here as [ErrOperationFailed].
func (c *Call) Hold(ctx context.Context, enable bool) error {
	_, err := c.invoker.Invoke(ctx, "hold", []any{c.id, enable})
	if err != nil {
		var invokeErr *bridge.InvokeError
		if errors.As(err, &invokeErr) {
			return fmt.Errorf("%w: hold call %s", ErrOperationFailed, c.id)
		}
		return fmt.Errorf("voip: hold call %s: %w", c.id, err)
	}
	return nil
}

// invokeAsync hands a fire-and-forget operation to the engine. The
// operation is queued and a single worker per call drains the queue,
// so sequential control operations reach the engine in submission
// order. A rejected operation only gets a debug log line; the call's
// state events carry the authoritative outcome.
func (c *Call) invokeAsync(operation string, args ...any) {
	c.opMu.Lock()
	c.opQueue = append(c.opQueue, pendingOp{operation: operation, args: args})
	if c.opRunning {
		c.opMu.Unlock()
		return
	}
	c.opRunning = true
	c.opMu.Unlock()
	go c.drainOps()
}

// drainOps invokes queued operations one at a time and exits once the
// queue is empty.
func (c *Call) drainOps() {
	for {
		c.opMu.Lock()
		if len(c.opQueue) == 0 {
			c.opRunning = false
			c.opMu.Unlock()
			return
		}
		op := c.opQueue[0]
		c.opQueue = c.opQueue[1:]
		c.opMu.Unlock()

		if _, err := c.invoker.Invoke(context.Background(), op.operation, op.args); err != nil {
			c.logger.Debug("call operation rejected",
				"operation", op.operation, "call", c.id, "error", err)
		}
	}
}

// handleEvent consumes a call-scoped wire event routed by the client's
// registry. Call state (the endpoint table) is updated before any
// handler runs.
func (c *Call) handleEvent(wireName string, payload *wirePayload) {
	// A wire name with no route is dropped silently; see wireRoutes.
	route, ok := wireRoutes[wireName]
	if !ok {
		return
	}
	if route.target == routeToEndpoint {
		c.routeToEndpoint(route.endpoint, payload)
		return
	}

	switch route.call {
	case CallEventConnected:
		c.events.emit(route.call, &ConnectedEvent{Call: c, Headers: payload.Headers})
	case CallEventDisconnected:
		c.events.emit(route.call, &DisconnectedEvent{
			Call:              c,
			Headers:           payload.Headers,
			AnsweredElsewhere: payload.AnsweredElsewhere,
		})
	case CallEventEndpointAdded:
		endpoint := newEndpoint(payload.EndpointID, payload.DisplayName,
			payload.SipURI, payload.UserName, c.logger)
		c.mu.Lock()
		c.endpoints[endpoint.ID()] = endpoint
		c.mu.Unlock()
		c.events.emit(route.call, &EndpointAddedEvent{Call: c, Endpoint: endpoint})
	case CallEventFailed:
		c.events.emit(route.call, &FailedEvent{
			Call:    c,
			Headers: payload.Headers,
			Code:    payload.Code,
			Reason:  payload.Reason,
		})
	case CallEventICECompleted:
		c.events.emit(route.call, &ICECompletedEvent{Call: c})
	case CallEventICETimeout:
		c.events.emit(route.call, &ICETimeoutEvent{Call: c})
	case CallEventInfoReceived:
		c.events.emit(route.call, &InfoReceivedEvent{
			Call:     c,
			Headers:  payload.Headers,
			MimeType: payload.MimeType,
			Body:     payload.Body,
		})
	case CallEventMessageReceived:
		c.events.emit(route.call, &MessageReceivedEvent{Call: c, Text: payload.Text})
	case CallEventProgressToneStart:
		c.events.emit(route.call, &ProgressToneStartEvent{Call: c, Headers: payload.Headers})
	case CallEventProgressToneStop:
		c.events.emit(route.call, &ProgressToneStopEvent{Call: c})
	}
}

// routeToEndpoint forwards an endpoint-targeted event. An event for an
// endpoint the call does not know is dropped silently, no diagnostic
// (benign race with endpoint teardown). Removal events are only
// delivered under the EvictOnRemoved policy, which takes the endpoint
// out of the table before its handlers run.
func (c *Call) routeToEndpoint(kind EndpointEventKind, payload *wirePayload) {
	c.mu.Lock()
	endpoint, ok := c.endpoints[payload.EndpointID]
	if ok && kind == EndpointEventRemoved {
		if !c.evictOnRemoved {
			c.mu.Unlock()
			return
		}
		delete(c.endpoints, payload.EndpointID)
	}
	c.mu.Unlock()

	if !ok {
		return
	}
	endpoint.handleEvent(kind, c, payload)
}
