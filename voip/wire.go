// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

// wirePayload is the decoded body of an engine event notification.
// One struct covers every event shape — the engine omits fields that
// do not apply. Decoding up front (instead of reshaping a raw map in
// place) is what guarantees that raw identifiers never leak onto the
// typed events handed to application code.
type wirePayload struct {
	CallID     string `cbor:"callId,omitempty"`
	EndpointID string `cbor:"endpointId,omitempty"`

	// Endpoint identity fields, present on IncomingCall,
	// CallEndpointAdded and EndpointInfoUpdated.
	DisplayName string `cbor:"displayName,omitempty"`
	SipURI      string `cbor:"sipUri,omitempty"`
	UserName    string `cbor:"userName,omitempty"`

	Headers           map[string]string `cbor:"headers,omitempty"`
	AnsweredElsewhere bool              `cbor:"answeredElsewhere,omitempty"`
	Code              int               `cbor:"code,omitempty"`
	Reason            string            `cbor:"reason,omitempty"`
	MimeType          string            `cbor:"mimeType,omitempty"`
	Body              string            `cbor:"body,omitempty"`
	Text              string            `cbor:"text,omitempty"`
	Video             bool              `cbor:"video,omitempty"`
}

// wireCallSettings is the engine's argument shape for call and answer
// operations. The flat SendVideo/ReceiveVideo fields of CallSettings
// nest under a video record on the wire.
type wireCallSettings struct {
	CustomData          string            `cbor:"customData,omitempty"`
	ExtraHeaders        map[string]string `cbor:"extraHeaders,omitempty"`
	PreferredVideoCodec VideoCodec        `cbor:"preferredVideoCodec"`
	SetupCallKit        bool              `cbor:"setupCallKit"`
	Video               wireVideoFlags    `cbor:"video"`
}

type wireVideoFlags struct {
	SendVideo    bool `cbor:"sendVideo"`
	ReceiveVideo bool `cbor:"receiveVideo"`
}

// mergeCallSettings produces the wire argument: nil means
// DefaultCallSettings, and an empty codec defaults to automatic.
func mergeCallSettings(settings *CallSettings) wireCallSettings {
	if settings == nil {
		settings = DefaultCallSettings()
	}
	codec := settings.PreferredVideoCodec
	if codec == "" {
		codec = VideoCodecAuto
	}
	return wireCallSettings{
		CustomData:          settings.CustomData,
		ExtraHeaders:        settings.ExtraHeaders,
		PreferredVideoCodec: codec,
		SetupCallKit:        settings.SetupCallKit,
		Video: wireVideoFlags{
			SendVideo:    settings.SendVideo,
			ReceiveVideo: settings.ReceiveVideo,
		},
	}
}

// wireInfo is the engine's argument shape for the sendInfo operation.
type wireInfo struct {
	Type    string            `cbor:"type"`
	Body    string            `cbor:"body"`
	Headers map[string]string `cbor:"headers,omitempty"`
}
