// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Voxline tools.
//
// Configuration is loaded from a single file specified by:
//   - VOXLINE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The config file is the
// single source of truth; flags may override individual values on top.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxline/voxline-go/voip"
)

// Config is the configuration for Voxline command line tools.
type Config struct {
	// Engine configures the connection to the native engine process.
	Engine EngineConfig `yaml:"engine"`

	// Account configures cloud authentication.
	Account AccountConfig `yaml:"account"`

	// Client configures the SDK session.
	Client ClientConfig `yaml:"client"`
}

// EngineConfig locates the native engine's bridge socket.
type EngineConfig struct {
	// Network is the socket family, "unix" or "tcp".
	// Default: unix
	Network string `yaml:"network"`

	// Address is the socket path (unix) or host:port (tcp).
	// Default: /run/voxline/engine.sock
	Address string `yaml:"address"`
}

// AccountConfig configures cloud authentication.
type AccountConfig struct {
	// User is the fully-qualified user name, in the form
	// "user@application.account.voxline.com".
	User string `yaml:"user"`
}

// ClientConfig configures the SDK session.
type ClientConfig struct {
	// LogLevel is the engine log verbosity (error, warning, info,
	// debug, verbose). Default: info
	LogLevel string `yaml:"log_level"`

	// EvictOnRemoved drops endpoints from calls when the engine
	// reports them removed. Default: false
	EvictOnRemoved bool `yaml:"evict_on_removed"`
}

// Default returns the default configuration. These defaults are the
// base that the config file and flags are merged onto.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Network: "unix",
			Address: "/run/voxline/engine.sock",
		},
		Client: ClientConfig{
			LogLevel: string(voip.LogLevelInfo),
		},
	}
}

// Load loads configuration from the VOXLINE_CONFIG environment
// variable. If the variable is not set, defaults are returned: unlike
// a daemon, a CLI tool can run entirely off flags.
func Load() (*Config, error) {
	configPath := os.Getenv("VOXLINE_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.Network != "unix" && c.Engine.Network != "tcp" {
		errs = append(errs, fmt.Errorf("engine.network must be unix or tcp, got %q", c.Engine.Network))
	}
	if c.Engine.Address == "" {
		errs = append(errs, fmt.Errorf("engine.address is required"))
	}

	levels := []voip.LogLevel{
		voip.LogLevelError, voip.LogLevelWarning, voip.LogLevelInfo,
		voip.LogLevelDebug, voip.LogLevelVerbose,
	}
	valid := false
	for _, level := range levels {
		if c.Client.LogLevel == string(level) {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("client.log_level must be one of %v, got %q", levels, c.Client.LogLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
