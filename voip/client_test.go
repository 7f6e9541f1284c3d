// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import (
	"context"
	"errors"
	"testing"

	"github.com/voxline/voxline-go/bridge"
	"github.com/voxline/voxline-go/lib/codec"
)

func TestNewClientRequiresInvoker(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient without an Invoker succeeded")
	}
}

func TestIncomingCallRegistersAndRoutes(t *testing.T) {
	client, engine := newTestClient(t, false)

	var incoming *IncomingCallEvent
	client.On(ClientEventIncomingCall, func(event Event) {
		incoming = event.(*IncomingCallEvent)
	})

	err := engine.Emit("IncomingCall", map[string]any{
		"callId":      "c1",
		"endpointId":  "e1",
		"displayName": "Bob",
		"video":       true,
		"headers":     map[string]string{"X-Priority": "high"},
	})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	if incoming == nil {
		t.Fatal("IncomingCall handler not invoked")
	}
	if incoming.Call == nil || incoming.Call.ID() != "c1" {
		t.Fatalf("incoming call = %+v, want ID c1", incoming.Call)
	}
	if !incoming.Video {
		t.Errorf("Video false, want true")
	}
	if incoming.Headers["X-Priority"] != "high" {
		t.Errorf("headers %v, want X-Priority=high", incoming.Headers)
	}

	// The calling endpoint is attached before the handler runs.
	endpoints := incoming.Call.Endpoints()
	if len(endpoints) != 1 || endpoints[0].ID() != "e1" || endpoints[0].DisplayName() != "Bob" {
		t.Fatalf("call endpoints = %v, want one endpoint e1/Bob", endpoints)
	}

	// The call is registered: subsequent call-scoped events reach it.
	connected := 0
	incoming.Call.On(CallEventConnected, func(Event) { connected++ })
	engine.Emit("CallConnected", map[string]any{"callId": "c1"})
	if connected != 1 {
		t.Fatalf("Connected handler invoked %d times, want 1", connected)
	}
}

func TestEventForUnknownCallDropped(t *testing.T) {
	_, engine := newTestClient(t, false)

	// Must not panic; no call c9 was ever registered.
	if err := engine.Emit("CallConnected", map[string]any{"callId": "c9"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}

func TestUnhandledEngineEventDropped(t *testing.T) {
	_, engine := newTestClient(t, false)
	if err := engine.Emit("SomethingNovel", map[string]any{}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}

func TestCallPlacesOutboundAndRegisters(t *testing.T) {
	client, engine := newTestClient(t, false)

	var callArgs []any
	engine.Handle("call", func(args []any) (any, error) {
		callArgs = args
		return map[string]any{"callId": "c7"}, nil
	})

	call, err := client.Call(context.Background(), "bob@example.voxline.com", nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if call.ID() != "c7" {
		t.Errorf("call ID %q, want c7", call.ID())
	}
	if callArgs[0] != "bob@example.voxline.com" {
		t.Errorf("number argument %v", callArgs[0])
	}
	settings, ok := callArgs[1].(wireCallSettings)
	if !ok {
		t.Fatalf("settings argument %T, want wireCallSettings", callArgs[1])
	}
	if settings.PreferredVideoCodec != VideoCodecAuto || !settings.Video.ReceiveVideo {
		t.Errorf("default settings not merged: %+v", settings)
	}

	invoked := 0
	call.On(CallEventConnected, func(Event) { invoked++ })
	engine.Emit("CallConnected", map[string]any{"callId": "c7"})
	if invoked != 1 {
		t.Fatalf("outbound call not registered for routing")
	}
}

func TestCallFailureReturnsError(t *testing.T) {
	client, engine := newTestClient(t, false)
	engine.Handle("call", func([]any) (any, error) {
		return nil, errors.New("NOT_LOGGED_IN")
	})

	if _, err := client.Call(context.Background(), "bob", nil); err == nil {
		t.Fatal("Call succeeded, want error")
	}
}

func TestInitEmitsSDKReady(t *testing.T) {
	client, engine := newTestClient(t, false)

	var initArgs []any
	engine.Handle("initClient", func(args []any) (any, error) {
		initArgs = args
		return nil, nil
	})

	ready := 0
	client.On(ClientEventSDKReady, func(Event) { ready++ })

	if err := client.Init(context.Background(), nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if ready != 1 {
		t.Fatalf("SDKReady emitted %d times, want 1", ready)
	}
	config, ok := initArgs[0].(*ClientConfig)
	if !ok {
		t.Fatalf("init argument %T, want *ClientConfig", initArgs[0])
	}
	if !config.EnableLogcatLogging || config.LogLevel != LogLevelInfo ||
		config.RequestAudioFocusMode != RequestOnCallStart {
		t.Errorf("defaults not merged: %+v", config)
	}
}

func TestConnectDualDelivery(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, false)
		established := 0
		client.On(ClientEventConnectionEstablished, func(Event) { established++ })

		if err := client.Connect(context.Background(), nil); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if established != 1 {
			t.Fatalf("ConnectionEstablished emitted %d times, want 1", established)
		}
	})

	t.Run("failure", func(t *testing.T) {
		client, engine := newTestClient(t, false)
		detail, err := codec.Marshal(map[string]any{"message": "no network"})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		engine.Handle("connect", func([]any) (any, error) {
			return nil, &bridge.InvokeError{Operation: "connect", Payload: detail}
		})

		var failed *ConnectionFailedEvent
		client.On(ClientEventConnectionFailed, func(event Event) {
			failed = event.(*ConnectionFailedEvent)
		})

		if err := client.Connect(context.Background(), nil); err == nil {
			t.Fatal("Connect succeeded, want error")
		}
		if failed == nil {
			t.Fatal("ConnectionFailed not emitted")
		}
		if failed.Message != "no network" {
			t.Errorf("failure message %q, want %q", failed.Message, "no network")
		}
	})
}

func TestDisconnectEmitsConnectionClosed(t *testing.T) {
	client, _ := newTestClient(t, false)
	closed := 0
	client.On(ClientEventConnectionClosed, func(Event) { closed++ })

	if err := client.Disconnect(context.Background()); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if closed != 1 {
		t.Fatalf("ConnectionClosed emitted %d times, want 1", closed)
	}
}

func TestState(t *testing.T) {
	client, engine := newTestClient(t, false)
	engine.Handle("getClientState", func([]any) (any, error) {
		return "logged_in", nil
	})

	state, err := client.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state != ClientStateLoggedIn {
		t.Errorf("state %q, want logged_in", state)
	}
}

func TestLoginSuccessDualDelivery(t *testing.T) {
	client, engine := newTestClient(t, false)

	var loginArgs []any
	engine.Handle("login", func(args []any) (any, error) {
		loginArgs = args
		return map[string]any{
			"displayName": "Bob",
			"tokens": map[string]any{
				"accessToken":   "at",
				"accessExpire":  300,
				"refreshToken":  "rt",
				"refreshExpire": 3600,
			},
		}, nil
	})

	var emitted *AuthResultEvent
	client.On(ClientEventAuthResult, func(event Event) {
		emitted = event.(*AuthResultEvent)
	})

	result, err := client.Login(context.Background(), "bob@app.acc", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.Result {
		t.Errorf("result not stamped successful")
	}
	if result.DisplayName != "Bob" {
		t.Errorf("display name %q, want Bob", result.DisplayName)
	}
	if result.Tokens == nil || result.Tokens.AccessToken != "at" || result.Tokens.RefreshExpire != 3600 {
		t.Errorf("tokens not decoded: %+v", result.Tokens)
	}
	if emitted != result {
		t.Errorf("emitted event %p and returned result %p differ", emitted, result)
	}

	params, ok := loginArgs[0].(map[string]any)
	if !ok {
		t.Fatalf("login argument %T, want map", loginArgs[0])
	}
	if params["username"] != "bob@app.acc" || params["password"] != "secret" {
		t.Errorf("login params %v", params)
	}
}

func TestLoginFailureDualDelivery(t *testing.T) {
	client, engine := newTestClient(t, false)

	detail, err := codec.Marshal(map[string]any{"code": 401})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	engine.Handle("login", func([]any) (any, error) {
		return nil, &bridge.InvokeError{Operation: "login", Payload: detail}
	})

	var emitted *AuthResultEvent
	client.On(ClientEventAuthResult, func(event Event) {
		emitted = event.(*AuthResultEvent)
	})

	if _, err := client.Login(context.Background(), "bob@app.acc", "wrong"); err == nil {
		t.Fatal("Login succeeded, want error")
	}
	if emitted == nil {
		t.Fatal("AuthResult not emitted on failure")
	}
	if emitted.Result {
		t.Errorf("failure event stamped successful")
	}
	if emitted.Code != 401 {
		t.Errorf("failure code %d, want 401", emitted.Code)
	}
}

func TestRequestOneTimeLoginKey(t *testing.T) {
	client, engine := newTestClient(t, false)

	engine.Handle("requestOneTimeLoginKey", func(args []any) (any, error) {
		params := args[0].(map[string]any)
		if params["username"] != "bob@app.acc" {
			t.Errorf("params %v", params)
		}
		return map[string]any{"result": true, "code": 302, "key": "otk"}, nil
	})

	var emitted *AuthResultEvent
	client.On(ClientEventAuthResult, func(event Event) {
		emitted = event.(*AuthResultEvent)
	})

	result, err := client.RequestOneTimeLoginKey(context.Background(), "bob@app.acc")
	if err != nil {
		t.Fatalf("RequestOneTimeLoginKey: %v", err)
	}
	if result.Key != "otk" || result.Code != 302 {
		t.Errorf("result %+v, want key otk code 302", result)
	}
	if emitted == nil {
		t.Fatal("AuthResult not emitted")
	}
}

func TestRequestOneTimeLoginKeyRefused(t *testing.T) {
	client, engine := newTestClient(t, false)
	engine.Handle("requestOneTimeLoginKey", func([]any) (any, error) {
		return map[string]any{"result": false, "code": 404}, nil
	})

	result, err := client.RequestOneTimeLoginKey(context.Background(), "nobody@app.acc")
	if err == nil {
		t.Fatal("refused request returned no error")
	}
	if result == nil || result.Code != 404 {
		t.Errorf("result %+v, want code 404", result)
	}
}

func TestTokenRefreshDualDelivery(t *testing.T) {
	client, engine := newTestClient(t, false)

	engine.Handle("tokenRefresh", func(args []any) (any, error) {
		params := args[0].(map[string]any)
		if params["username"] != "bob@app.acc" || params["token"] != "rt" {
			t.Errorf("params %v", params)
		}
		return map[string]any{
			"tokens": map[string]any{"accessToken": "at2", "refreshToken": "rt2"},
		}, nil
	})

	var emitted *RefreshTokenResultEvent
	client.On(ClientEventRefreshTokenResult, func(event Event) {
		emitted = event.(*RefreshTokenResultEvent)
	})

	result, err := client.TokenRefresh(context.Background(), "bob@app.acc", "rt")
	if err != nil {
		t.Fatalf("TokenRefresh: %v", err)
	}
	if !result.Result {
		t.Errorf("result not stamped successful")
	}
	if result.Tokens == nil || result.Tokens.AccessToken != "at2" {
		t.Errorf("tokens %+v", result.Tokens)
	}
	if emitted != result {
		t.Errorf("emitted event and returned result differ")
	}
}

func TestTwoClientsAreIsolated(t *testing.T) {
	clientA, engineA := newTestClient(t, false)
	clientB, engineB := newTestClient(t, false)

	incomingA, incomingB := 0, 0
	clientA.On(ClientEventIncomingCall, func(Event) { incomingA++ })
	clientB.On(ClientEventIncomingCall, func(Event) { incomingB++ })

	engineA.Emit("IncomingCall", map[string]any{"callId": "c1", "endpointId": "e1"})

	if incomingA != 1 || incomingB != 0 {
		t.Fatalf("incoming counts A=%d B=%d, want 1/0", incomingA, incomingB)
	}

	// Client B never sees client A's call: the event is dropped as an
	// unknown call ID instead of reaching A's registry.
	engineB.Emit("CallConnected", map[string]any{"callId": "c1"})
}

func TestCallRegistryLastWriteWins(t *testing.T) {
	registry := newCallRegistry()
	engine := bridge.NewMemory()

	first := newCall("c1", nil, engine, discardLogger(), false)
	second := newCall("c1", nil, engine, discardLogger(), false)
	registry.register(first)
	registry.register(second)

	if got := registry.lookup("c1"); got != second {
		t.Fatalf("lookup returned %p, want the later registration %p", got, second)
	}
	if got := registry.lookup("c9"); got != nil {
		t.Fatalf("lookup of unknown ID returned %p, want nil", got)
	}
}
