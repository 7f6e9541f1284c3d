// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

// ClientConfig configures the native engine at [Client.Init] time.
// The struct is sent to the engine verbatim; use [DefaultClientConfig]
// (or pass nil to Init) for the engine's recommended defaults.
type ClientConfig struct {
	// BundleID is the application bundle ID / package name. Only
	// needed when push notifications for several mobile apps share
	// one Voxline application.
	BundleID string `cbor:"bundleId"`

	// EnableDebugLogging enables the engine's debug log output.
	EnableDebugLogging bool `cbor:"enableDebugLogging"`

	// EnableLogcatLogging enables engine log output to the platform
	// device log. Enabled in DefaultClientConfig.
	EnableLogcatLogging bool `cbor:"enableLogcatLogging"`

	// LogLevel is the engine log verbosity. Empty defaults to
	// LogLevelInfo.
	LogLevel LogLevel `cbor:"logLevel"`

	// RequestAudioFocusMode controls when platform audio focus is
	// requested. Empty defaults to RequestOnCallStart.
	RequestAudioFocusMode RequestAudioFocusMode `cbor:"requestAudioFocusMode"`
}

// DefaultClientConfig returns the engine's recommended defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		EnableLogcatLogging:   true,
		LogLevel:              LogLevelInfo,
		RequestAudioFocusMode: RequestOnCallStart,
	}
}

// mergeClientConfig fills defaults: nil means DefaultClientConfig,
// a non-nil config has empty enum fields defaulted.
func mergeClientConfig(config *ClientConfig) *ClientConfig {
	if config == nil {
		return DefaultClientConfig()
	}
	merged := *config
	if merged.LogLevel == "" {
		merged.LogLevel = LogLevelInfo
	}
	if merged.RequestAudioFocusMode == "" {
		merged.RequestAudioFocusMode = RequestOnCallStart
	}
	return &merged
}

// ConnectOptions configures [Client.Connect].
type ConnectOptions struct {
	// ConnectivityCheck verifies that UDP traffic flows between the
	// device and the cloud before connecting. Slows the connection
	// down; off by default.
	ConnectivityCheck bool `cbor:"connectivityCheck"`

	// Servers names specific media gateways to connect to. Empty
	// lets the cloud choose.
	Servers []string `cbor:"servers"`
}

// mergeConnectOptions fills defaults: nil means zero options, and the
// server list is never encoded as null.
func mergeConnectOptions(options *ConnectOptions) *ConnectOptions {
	merged := ConnectOptions{}
	if options != nil {
		merged = *options
	}
	if merged.Servers == nil {
		merged.Servers = []string{}
	}
	return &merged
}

// CallSettings configures an outbound call ([Client.Call]) or an
// answer ([Call.Answer]). The zero value sends no video and receives
// no video; use [DefaultCallSettings] for the usual audio call with
// receive-video enabled.
type CallSettings struct {
	// CustomData is an application-defined string attached to the
	// call session, readable from cloud scenarios and call history.
	// Limited to 200 bytes; use Call.SendMessage for more.
	CustomData string

	// ExtraHeaders are custom SIP headers sent with the call INVITE.
	// Names must start with "X-" to be processed.
	ExtraHeaders map[string]string

	// PreferredVideoCodec for the call. Empty defaults to
	// VideoCodecAuto.
	PreferredVideoCodec VideoCodec

	// SetupCallKit makes outgoing iOS calls via CallKit.
	SetupCallKit bool

	// SendVideo enables video capture and transmission.
	SendVideo bool

	// ReceiveVideo enables remote video rendering.
	ReceiveVideo bool
}

// DefaultCallSettings returns the engine's recommended defaults:
// automatic codec choice, receive video, send audio only.
func DefaultCallSettings() *CallSettings {
	return &CallSettings{
		PreferredVideoCodec: VideoCodecAuto,
		ReceiveVideo:        true,
	}
}

// LoginTokens are issued with a successful auth result and allow
// re-login without a password.
type LoginTokens struct {
	// AccessExpire is seconds until the access token expires.
	AccessExpire int `cbor:"accessExpire"`

	// AccessToken can be used with Client.LoginWithToken before
	// AccessExpire elapses.
	AccessToken string `cbor:"accessToken"`

	// RefreshExpire is seconds until the refresh token expires.
	RefreshExpire int `cbor:"refreshExpire"`

	// RefreshToken can be used once with Client.TokenRefresh before
	// RefreshExpire elapses.
	RefreshToken string `cbor:"refreshToken"`
}
