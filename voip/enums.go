// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

// LogLevel selects the native engine's log verbosity.
type LogLevel string

const (
	LogLevelError   LogLevel = "error"
	LogLevelWarning LogLevel = "warning"
	LogLevelInfo    LogLevel = "info"
	LogLevelDebug   LogLevel = "debug"
	LogLevelVerbose LogLevel = "verbose"
)

// ClientState is the engine's connection/login state as reported by
// [Client.State].
type ClientState string

const (
	ClientStateDisconnected ClientState = "disconnected"
	ClientStateConnecting   ClientState = "connecting"
	ClientStateConnected    ClientState = "connected"
	ClientStateLoggingIn    ClientState = "logging_in"
	ClientStateLoggedIn     ClientState = "logged_in"
)

// CallError is the engine's error code for a failed call operation.
type CallError string

const (
	// CallErrorAlreadyInThisState: the call is already in the requested state.
	CallErrorAlreadyInThisState CallError = "ALREADY_IN_THIS_STATE"
	// CallErrorFunctionalityDisabled: the requested functionality is disabled.
	CallErrorFunctionalityDisabled CallError = "FUNCTIONALITY_IS_DISABLED"
	// CallErrorIncorrectOperation: the operation is invalid for this call,
	// for example rejecting an outgoing call.
	CallErrorIncorrectOperation CallError = "INCORRECT_OPERATION"
	// CallErrorInternal: an internal engine error.
	CallErrorInternal CallError = "INTERNAL_ERROR"
	// CallErrorMediaIsOnHold: the operation cannot be performed while the
	// call is on hold.
	CallErrorMediaIsOnHold CallError = "MEDIA_IS_ON_HOLD"
	// CallErrorMissingPermission: a required platform permission is missing.
	CallErrorMissingPermission CallError = "MISSING_PERMISSION"
	// CallErrorNotLoggedIn: the client is not logged in.
	CallErrorNotLoggedIn CallError = "NOT_LOGGED_IN"
	// CallErrorRejected: the operation was rejected.
	CallErrorRejected CallError = "REJECTED"
	// CallErrorTimeout: the operation did not complete in time.
	CallErrorTimeout CallError = "TIMEOUT"
)

// VideoCodec is the preferred video codec for a call.
type VideoCodec string

const (
	VideoCodecVP8  VideoCodec = "VP8"
	VideoCodecH264 VideoCodec = "H264"
	// VideoCodecAuto lets the engine choose.
	VideoCodecAuto VideoCodec = "AUTO"
)

// RequestAudioFocusMode controls when the engine requests platform
// audio focus.
type RequestAudioFocusMode string

const (
	// RequestOnCallStart requests audio focus when a call is started
	// (Client.Call or Call.Answer).
	RequestOnCallStart RequestAudioFocusMode = "REQUEST_ON_CALL_START"
	// RequestOnCallConnected requests audio focus when the call is
	// established (the Connected event).
	RequestOnCallConnected RequestAudioFocusMode = "REQUEST_ON_CALL_CONNECTED"
)
