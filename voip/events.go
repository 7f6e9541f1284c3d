// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

// ClientEventKind identifies a session-scoped event on [Client]. The
// set is closed; On/Off reject kinds outside it.
type ClientEventKind string

const (
	// ClientEventConnectionEstablished: the connection to the cloud is up.
	ClientEventConnectionEstablished ClientEventKind = "ConnectionEstablished"
	// ClientEventConnectionFailed: connecting to the cloud failed.
	ClientEventConnectionFailed ClientEventKind = "ConnectionFailed"
	// ClientEventConnectionClosed: the connection to the cloud closed.
	ClientEventConnectionClosed ClientEventKind = "ConnectionClosed"
	// ClientEventAuthResult: outcome of a login or one-time-key request.
	ClientEventAuthResult ClientEventKind = "AuthResult"
	// ClientEventRefreshTokenResult: outcome of a token refresh.
	ClientEventRefreshTokenResult ClientEventKind = "RefreshTokenResult"
	// ClientEventIncomingCall: a remote party is calling.
	ClientEventIncomingCall ClientEventKind = "IncomingCall"
	// ClientEventSDKReady: the engine finished initializing.
	ClientEventSDKReady ClientEventKind = "SDKReady"
)

// CallEventKind identifies an event on [Call].
type CallEventKind string

const (
	// CallEventConnected: a reliable connection is established for the
	// call. Audio may precede this by a few seconds.
	CallEventConnected CallEventKind = "Connected"
	// CallEventDisconnected: the call ended.
	CallEventDisconnected CallEventKind = "Disconnected"
	// CallEventEndpointAdded: a participant joined the call.
	CallEventEndpointAdded CallEventKind = "EndpointAdded"
	// CallEventFailed: the call failed.
	CallEventFailed CallEventKind = "Failed"
	// CallEventCallOperationFailed: a call control operation failed.
	CallEventCallOperationFailed CallEventKind = "CallOperationFailed"
	// CallEventICECompleted: ICE negotiation completed.
	CallEventICECompleted CallEventKind = "ICECompleted"
	// CallEventICETimeout: ICE negotiation timed out.
	CallEventICETimeout CallEventKind = "ICETimeout"
	// CallEventInfoReceived: a SIP INFO message arrived.
	CallEventInfoReceived CallEventKind = "InfoReceived"
	// CallEventMessageReceived: a text message arrived.
	CallEventMessageReceived CallEventKind = "MessageReceived"
	// CallEventProgressToneStart: progress tone playback started.
	CallEventProgressToneStart CallEventKind = "ProgressToneStart"
	// CallEventProgressToneStop: progress tone playback stopped.
	CallEventProgressToneStop CallEventKind = "ProgressToneStop"
)

// EndpointEventKind identifies an event on [Endpoint].
type EndpointEventKind string

const (
	// EndpointEventInfoUpdated: the endpoint's display name, SIP URI or
	// user name changed.
	EndpointEventInfoUpdated EndpointEventKind = "InfoUpdated"
	// EndpointEventRemoved: the endpoint left the call.
	EndpointEventRemoved EndpointEventKind = "Removed"
)

// Event is implemented by every payload type delivered to a handler.
type Event interface {
	// EventName returns the bare event kind, letting a handler
	// registered for several kinds discriminate the payload type.
	EventName() string
}

// Handler receives one event. Handlers registered for the same kind
// run sequentially in unspecified order; a panic in one handler is
// recovered and logged so the remaining handlers still run.
type Handler func(Event)

// SDKReadyEvent is emitted when [Client.Init] succeeds.
type SDKReadyEvent struct{}

func (*SDKReadyEvent) EventName() string { return "SDKReady" }

// ConnectionEstablishedEvent is emitted when [Client.Connect] succeeds.
type ConnectionEstablishedEvent struct{}

func (*ConnectionEstablishedEvent) EventName() string { return "ConnectionEstablished" }

// ConnectionFailedEvent is emitted when [Client.Connect] fails.
type ConnectionFailedEvent struct {
	// Message describes the failure.
	Message string `cbor:"message"`
}

func (*ConnectionFailedEvent) EventName() string { return "ConnectionFailed" }

// ConnectionClosedEvent is emitted when the cloud connection closes.
type ConnectionClosedEvent struct{}

func (*ConnectionClosedEvent) EventName() string { return "ConnectionClosed" }

// AuthResultEvent is emitted for every login-family operation, success
// or failure, in addition to the operation's returned outcome.
type AuthResultEvent struct {
	// Result is true on successful authentication.
	Result bool `cbor:"result"`

	// Code is the auth result code (302 carries a one-time login key).
	Code int `cbor:"code,omitempty"`

	// DisplayName of the authorized user.
	DisplayName string `cbor:"displayName,omitempty"`

	// Key is the server-issued input for computing the one-time-key
	// login hash, present after Client.RequestOneTimeLoginKey.
	Key string `cbor:"key,omitempty"`

	// Tokens for password-less re-login. Present on success.
	Tokens *LoginTokens `cbor:"tokens,omitempty"`
}

func (*AuthResultEvent) EventName() string { return "AuthResult" }

// RefreshTokenResultEvent is emitted for [Client.TokenRefresh].
type RefreshTokenResultEvent struct {
	// Result is true when the refresh succeeded.
	Result bool `cbor:"result"`

	// Code is the auth result code.
	Code int `cbor:"code,omitempty"`

	// Tokens is the renewed token pair. Present on success.
	Tokens *LoginTokens `cbor:"tokens,omitempty"`
}

func (*RefreshTokenResultEvent) EventName() string { return "RefreshTokenResult" }

// IncomingCallEvent is emitted when a remote party calls. The Call
// already has the calling endpoint attached and is registered, so the
// handler can immediately Answer or Decline.
type IncomingCallEvent struct {
	// Call is the incoming call.
	Call *Call

	// Headers are optional SIP headers received with the call.
	Headers map[string]string

	// Video is true when the caller initiated a video call.
	Video bool
}

func (*IncomingCallEvent) EventName() string { return "IncomingCall" }

// ConnectedEvent: the call has a reliable connection.
type ConnectedEvent struct {
	Call *Call

	// Headers are optional SIP headers received with the event.
	Headers map[string]string
}

func (*ConnectedEvent) EventName() string { return "Connected" }

// DisconnectedEvent: the call ended.
type DisconnectedEvent struct {
	Call    *Call
	Headers map[string]string

	// AnsweredElsewhere is true when the call was answered on another
	// device via SIP forking.
	AnsweredElsewhere bool
}

func (*DisconnectedEvent) EventName() string { return "Disconnected" }

// EndpointAddedEvent: a participant joined the call. The endpoint is
// already present in Call.Endpoints when handlers run.
type EndpointAddedEvent struct {
	Call     *Call
	Endpoint *Endpoint
}

func (*EndpointAddedEvent) EventName() string { return "EndpointAdded" }

// FailedEvent: the call failed.
type FailedEvent struct {
	Call    *Call
	Headers map[string]string

	// Code is the call status code.
	Code int

	// Reason is the status message, e.g. "Busy Here".
	Reason string
}

func (*FailedEvent) EventName() string { return "Failed" }

// CallOperationFailedEvent: a call control operation failed.
type CallOperationFailedEvent struct {
	Call *Call

	// Code classifies the failure.
	Code CallError

	// Message describes the failure.
	Message string
}

func (*CallOperationFailedEvent) EventName() string { return "CallOperationFailed" }

// ICECompletedEvent: ICE negotiation for the call completed.
type ICECompletedEvent struct {
	Call *Call
}

func (*ICECompletedEvent) EventName() string { return "ICECompleted" }

// ICETimeoutEvent: ICE negotiation timed out.
type ICETimeoutEvent struct {
	Call *Call
}

func (*ICETimeoutEvent) EventName() string { return "ICETimeout" }

// InfoReceivedEvent: a SIP INFO message arrived on the call.
type InfoReceivedEvent struct {
	Call    *Call
	Headers map[string]string

	// MimeType of the message body, e.g. "text/plain".
	MimeType string

	// Body is the message content.
	Body string
}

func (*InfoReceivedEvent) EventName() string { return "InfoReceived" }

// MessageReceivedEvent: a text message arrived on the call.
type MessageReceivedEvent struct {
	Call *Call

	// Text is the message content.
	Text string
}

func (*MessageReceivedEvent) EventName() string { return "MessageReceived" }

// ProgressToneStartEvent: progress tone playback started.
type ProgressToneStartEvent struct {
	Call    *Call
	Headers map[string]string
}

func (*ProgressToneStartEvent) EventName() string { return "ProgressToneStart" }

// ProgressToneStopEvent: progress tone playback stopped.
type ProgressToneStopEvent struct {
	Call *Call
}

func (*ProgressToneStopEvent) EventName() string { return "ProgressToneStop" }

// InfoUpdatedEvent: the endpoint's identity fields were updated. The
// Endpoint already carries the new values when handlers run.
type InfoUpdatedEvent struct {
	// Call the endpoint belongs to.
	Call *Call

	// Endpoint that was updated.
	Endpoint *Endpoint
}

func (*InfoUpdatedEvent) EventName() string { return "InfoUpdated" }

// RemovedEvent: the endpoint left the call. Only delivered when the
// client was created with EvictOnRemoved; see [Config].
type RemovedEvent struct {
	Call     *Call
	Endpoint *Endpoint
}

func (*RemovedEvent) EventName() string { return "Removed" }
