// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

// voxline-dial is a command line softphone for exercising a Voxline
// engine: it connects, logs in, then either places an outbound call or
// waits for an incoming one, printing call events until the call ends.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/voxline/voxline-go/bridge"
	"github.com/voxline/voxline-go/lib/config"
	"github.com/voxline/voxline-go/voip"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("voxline-dial", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to voxline.yaml (default: $VOXLINE_CONFIG)")
	engineAddr := flags.String("engine", "", "engine socket address (overrides config)")
	network := flags.String("network", "", "engine socket family, unix or tcp (overrides config)")
	user := flags.String("user", "", "fully-qualified user name (overrides config)")
	number := flags.String("number", "", "number to call; omit to wait for an incoming call")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *engineAddr != "" {
		cfg.Engine.Address = *engineAddr
	}
	if *network != "" {
		cfg.Engine.Network = *network
	}
	if *user != "" {
		cfg.Account.User = *user
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Account.User == "" {
		return fmt.Errorf("no user: set --user or account.user in the config file")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := bridge.Dial(ctx, cfg.Engine.Network, cfg.Engine.Address, bridge.ConnConfig{
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := voip.NewClient(voip.Config{
		Invoker:        conn,
		Logger:         logger,
		EvictOnRemoved: cfg.Client.EvictOnRemoved,
	})
	if err != nil {
		return err
	}
	conn.SetSink(client)

	if err := client.Init(ctx, &voip.ClientConfig{
		LogLevel: voip.LogLevel(cfg.Client.LogLevel),
	}); err != nil {
		return err
	}
	if err := client.Connect(ctx, nil); err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	auth, err := client.Login(ctx, cfg.Account.User, password)
	if err != nil {
		return err
	}
	logger.Info("logged in", "user", cfg.Account.User, "display_name", auth.DisplayName)

	call, err := obtainCall(ctx, client, *number)
	if err != nil {
		return err
	}
	return watchCall(ctx, call)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func promptPassword() (string, error) {
	stdinFileDescriptor := int(os.Stdin.Fd())
	if !term.IsTerminal(stdinFileDescriptor) {
		return "", fmt.Errorf("no terminal available for the password prompt")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(stdinFileDescriptor)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}

// obtainCall either places an outbound call to number or, with no
// number, answers the first incoming call.
func obtainCall(ctx context.Context, client *voip.Client, number string) (*voip.Call, error) {
	if number != "" {
		slog.Info("calling", "number", number)
		return client.Call(ctx, number, nil)
	}

	slog.Info("waiting for an incoming call")
	incoming := make(chan *voip.Call, 1)
	client.On(voip.ClientEventIncomingCall, func(event voip.Event) {
		call := event.(*voip.IncomingCallEvent).Call
		select {
		case incoming <- call:
		default:
			// Already on a call; leave the second one ringing.
			slog.Info("ignoring additional incoming call", "call", call.ID())
		}
	})

	select {
	case call := <-incoming:
		slog.Info("answering", "call", call.ID())
		call.Answer(nil)
		return call, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// watchCall prints call events until the call disconnects or fails, or
// the context is cancelled (in which case the call is hung up).
func watchCall(ctx context.Context, call *voip.Call) error {
	done := make(chan error, 1)

	call.On(voip.CallEventConnected, func(voip.Event) {
		fmt.Println("call connected")
	})
	call.On(voip.CallEventEndpointAdded, func(event voip.Event) {
		endpoint := event.(*voip.EndpointAddedEvent).Endpoint
		fmt.Printf("participant joined: %s (%s)\n", endpoint.DisplayName(), endpoint.UserName())
	})
	call.On(voip.CallEventMessageReceived, func(event voip.Event) {
		fmt.Printf("message: %s\n", event.(*voip.MessageReceivedEvent).Text)
	})
	call.On(voip.CallEventProgressToneStart, func(voip.Event) {
		fmt.Println("ringing...")
	})
	call.On(voip.CallEventDisconnected, func(voip.Event) {
		done <- nil
	})
	call.On(voip.CallEventFailed, func(event voip.Event) {
		failed := event.(*voip.FailedEvent)
		done <- fmt.Errorf("call failed: %d %s", failed.Code, failed.Reason)
	})

	select {
	case err := <-done:
		fmt.Println("call ended")
		return err
	case <-ctx.Done():
		call.Hangup(nil)
		return nil
	}
}
