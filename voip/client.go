// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voxline/voxline-go/bridge"
	"github.com/voxline/voxline-go/lib/codec"
)

// Config configures a [Client].
type Config struct {
	// Invoker carries operations to the native engine. Required.
	Invoker bridge.Invoker

	// Logger for SDK diagnostics. nil means slog.Default().
	Logger *slog.Logger

	// EvictOnRemoved makes a Call drop an endpoint from its table when
	// the engine reports the endpoint removed, and deliver the Removed
	// event. Off by default: removal notifications are ignored and the
	// endpoint stays visible until the call ends.
	EvictOnRemoved bool
}

// Client is the session facade: it owns the connection and login
// operations, creates calls, and routes engine notifications to them.
// A Client's calls are private to it; two clients never share state.
//
// Client implements [bridge.EventSink]. Wire it to its bridge with
// SetSink before invoking operations that produce events.
type Client struct {
	invoker        bridge.Invoker
	logger         *slog.Logger
	events         *emitter[ClientEventKind]
	registry       *callRegistry
	evictOnRemoved bool
}

var clientEventKinds = []ClientEventKind{
	ClientEventConnectionEstablished,
	ClientEventConnectionFailed,
	ClientEventConnectionClosed,
	ClientEventAuthResult,
	ClientEventRefreshTokenResult,
	ClientEventIncomingCall,
	ClientEventSDKReady,
}

// NewClient creates a client over the given bridge invoker.
func NewClient(config Config) (*Client, error) {
	if config.Invoker == nil {
		return nil, fmt.Errorf("voip: config needs an Invoker")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		invoker:        config.Invoker,
		logger:         logger,
		events:         newEmitter("client", clientEventKinds, logger),
		registry:       newCallRegistry(),
		evictOnRemoved: config.EvictOnRemoved,
	}, nil
}

// On registers a handler for the client event kind. See the package
// documentation for the subscription contract.
func (c *Client) On(kind ClientEventKind, handler Handler) {
	c.events.On(kind, handler)
}

// Off removes a handler for the client event kind; a nil handler
// removes all handlers for that kind.
func (c *Client) Off(kind ClientEventKind, handler Handler) {
	c.events.Off(kind, handler)
}

// Init initializes the native engine. nil config means
// [DefaultClientConfig]. Emits SDKReady on success.
func (c *Client) Init(ctx context.Context, config *ClientConfig) error {
	if _, err := c.invoker.Invoke(ctx, "initClient", []any{mergeClientConfig(config)}); err != nil {
		return fmt.Errorf("voip: init: %w", err)
	}
	c.events.emit(ClientEventSDKReady, &SDKReadyEvent{})
	return nil
}

// Connect connects to the cloud. nil options means defaults. The
// outcome is delivered twice: as the return value and as a
// ConnectionEstablished or ConnectionFailed event. Only engine-reported
// refusals produce the failure event; a transport failure (closed
// bridge, cancelled context) surfaces as the returned error alone.
func (c *Client) Connect(ctx context.Context, options *ConnectOptions) error {
	if _, err := c.invoker.Invoke(ctx, "connect", []any{mergeConnectOptions(options)}); err != nil {
		event := &ConnectionFailedEvent{}
		var invokeErr *bridge.InvokeError
		if errors.As(err, &invokeErr) {
			c.decodeDetail(invokeErr.Payload, event)
			c.events.emit(ClientEventConnectionFailed, event)
		}
		return fmt.Errorf("voip: connect: %w", err)
	}
	c.events.emit(ClientEventConnectionEstablished, &ConnectionEstablishedEvent{})
	return nil
}

// Disconnect closes the cloud connection. Emits ConnectionClosed once
// the engine confirms.
func (c *Client) Disconnect(ctx context.Context) error {
	if _, err := c.invoker.Invoke(ctx, "disconnect", nil); err != nil {
		return fmt.Errorf("voip: disconnect: %w", err)
	}
	c.events.emit(ClientEventConnectionClosed, &ConnectionClosedEvent{})
	return nil
}

// State reports the engine's current connection/login state.
func (c *Client) State(ctx context.Context) (ClientState, error) {
	result, err := c.invoker.Invoke(ctx, "getClientState", nil)
	if err != nil {
		return "", fmt.Errorf("voip: get client state: %w", err)
	}
	var state ClientState
	if err := codec.Unmarshal(result, &state); err != nil {
		return "", fmt.Errorf("voip: decode client state: %w", err)
	}
	return state, nil
}

// Login authenticates with a password. The outcome is delivered twice:
// as the return value and as an AuthResult event. As with Connect,
// only an engine-reported refusal emits the failure event; transport
// failures return an error with no event.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResultEvent, error) {
	return c.authenticate(ctx, "login", map[string]any{
		"username": username,
		"password": password,
	})
}

// LoginWithToken authenticates with an access token from an earlier
// successful login.
func (c *Client) LoginWithToken(ctx context.Context, username, token string) (*AuthResultEvent, error) {
	return c.authenticate(ctx, "loginWithToken", map[string]any{
		"username": username,
		"token":    token,
	})
}

// LoginWithOneTimeKey authenticates with the hash computed from a key
// obtained via [Client.RequestOneTimeLoginKey].
func (c *Client) LoginWithOneTimeKey(ctx context.Context, username, hash string) (*AuthResultEvent, error) {
	return c.authenticate(ctx, "loginWithOneTimeKey", map[string]any{
		"username": username,
		"hash":     hash,
	})
}

// RequestOneTimeLoginKey asks the cloud for a one-time login key. The
// key arrives on the returned event (auth code 302) and on the
// AuthResult event; combine it with the password hash and log in via
// [Client.LoginWithOneTimeKey].
func (c *Client) RequestOneTimeLoginKey(ctx context.Context, username string) (*AuthResultEvent, error) {
	result, err := c.invoker.Invoke(ctx, "requestOneTimeLoginKey", []any{map[string]any{
		"username": username,
	}})
	if err != nil {
		return nil, c.authFailure("requestOneTimeLoginKey", err)
	}
	event := &AuthResultEvent{}
	if err := codec.Unmarshal(result, event); err != nil {
		return nil, fmt.Errorf("voip: requestOneTimeLoginKey: decode outcome: %w", err)
	}
	c.events.emit(ClientEventAuthResult, event)
	if !event.Result {
		return event, fmt.Errorf("voip: requestOneTimeLoginKey: refused with code %d", event.Code)
	}
	return event, nil
}

// TokenRefresh exchanges a refresh token for a new token pair. The
// outcome is delivered twice: as the return value and as a
// RefreshTokenResult event (engine-reported refusals only, as with
// Connect).
func (c *Client) TokenRefresh(ctx context.Context, username, refreshToken string) (*RefreshTokenResultEvent, error) {
	result, err := c.invoker.Invoke(ctx, "tokenRefresh", []any{map[string]any{
		"username": username,
		"token":    refreshToken,
	}})
	if err != nil {
		event := &RefreshTokenResultEvent{}
		var invokeErr *bridge.InvokeError
		if errors.As(err, &invokeErr) {
			c.decodeDetail(invokeErr.Payload, event)
			c.events.emit(ClientEventRefreshTokenResult, event)
		}
		return nil, fmt.Errorf("voip: tokenRefresh: %w", err)
	}
	event := &RefreshTokenResultEvent{}
	if err := codec.Unmarshal(result, event); err != nil {
		return nil, fmt.Errorf("voip: tokenRefresh: decode outcome: %w", err)
	}
	event.Result = true
	c.events.emit(ClientEventRefreshTokenResult, event)
	return event, nil
}

// Call starts an outbound call to the given number (a user name, SIP
// URI or phone number). nil settings means [DefaultCallSettings]. The
// returned Call is registered for event routing before any of its
// events can arrive.
func (c *Client) Call(ctx context.Context, number string, settings *CallSettings) (*Call, error) {
	result, err := c.invoker.Invoke(ctx, "call", []any{number, mergeCallSettings(settings)})
	if err != nil {
		return nil, fmt.Errorf("voip: call %q: %w", number, err)
	}
	var created struct {
		CallID string `cbor:"callId"`
	}
	if err := codec.Unmarshal(result, &created); err != nil {
		return nil, fmt.Errorf("voip: call %q: decode outcome: %w", number, err)
	}
	call := newCall(created.CallID, nil, c.invoker, c.logger, c.evictOnRemoved)
	c.registry.register(call)
	return call, nil
}

// HandleBridgeEvent implements [bridge.EventSink]. Call- and
// endpoint-scoped events go through the registry; IncomingCall creates
// the call with its calling endpoint attached and registers it before
// handlers run. Anything else is dropped with a debug log.
func (c *Client) HandleBridgeEvent(name string, payload []byte) {
	decoded := &wirePayload{}
	if err := codec.Unmarshal(payload, decoded); err != nil {
		c.logger.Warn("dropping undecodable engine event",
			"event", name, "error", err)
		return
	}

	switch {
	case name == string(ClientEventIncomingCall):
		endpoint := newEndpoint(decoded.EndpointID, decoded.DisplayName,
			decoded.SipURI, decoded.UserName, c.logger)
		call := newCall(decoded.CallID, endpoint, c.invoker, c.logger, c.evictOnRemoved)
		c.registry.register(call)
		c.events.emit(ClientEventIncomingCall, &IncomingCallEvent{
			Call:    call,
			Headers: decoded.Headers,
			Video:   decoded.Video,
		})
	case callScoped(name):
		c.registry.route(name, decoded)
	default:
		c.logger.Debug("dropping unhandled engine event", "event", name)
	}
}

// authenticate runs one login-family operation. On success the engine
// outcome decodes into an AuthResultEvent that is stamped successful;
// on refusal the failure detail attached to the bridge error decodes
// into the same shape. Either way the event fires before returning.
func (c *Client) authenticate(ctx context.Context, operation string, params map[string]any) (*AuthResultEvent, error) {
	result, err := c.invoker.Invoke(ctx, operation, []any{params})
	if err != nil {
		return nil, c.authFailure(operation, err)
	}
	event := &AuthResultEvent{}
	if err := codec.Unmarshal(result, event); err != nil {
		return nil, fmt.Errorf("voip: %s: decode outcome: %w", operation, err)
	}
	event.Result = true
	c.events.emit(ClientEventAuthResult, event)
	return event, nil
}

// authFailure emits the AuthResult event for a refused login-family
// operation and wraps the bridge error.
func (c *Client) authFailure(operation string, err error) error {
	var invokeErr *bridge.InvokeError
	if errors.As(err, &invokeErr) {
		event := &AuthResultEvent{}
		c.decodeDetail(invokeErr.Payload, event)
		event.Result = false
		c.events.emit(ClientEventAuthResult, event)
	}
	return fmt.Errorf("voip: %s: %w", operation, err)
}

// decodeDetail decodes a failure detail payload, tolerating its
// absence: a detail-free failure leaves the event zero-valued.
func (c *Client) decodeDetail(payload []byte, into any) {
	if len(payload) == 0 {
		return
	}
	if err := codec.Unmarshal(payload, into); err != nil {
		c.logger.Warn("undecodable failure detail", "error", err)
	}
}
