// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/exectime/internal/exectime"
	"github.com/tomtom215/exectime/internal/logging"
	"github.com/tomtom215/exectime/internal/validation"
)

// Config holds the logging setup and the execution-time targets loaded from
// defaults, an optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults (info level, JSON output, no targets)
//  2. Config File: Optional YAML config file (exectime.yaml)
//  3. Environment Variables: Override logging and namespace settings
//
// Example - Build an interceptor from configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	ic, err := config.Setup(cfg)
//	if err != nil {
//	    return err
//	}
//	get := exectime.Wrap1(ic, exectime.SignatureFor[Store]("Get"), store.Get)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Exectime ExectimeConfig `koanf:"exectime"`
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level     string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format    string `koanf:"format" validate:"oneof=json console"`
	Caller    bool   `koanf:"caller"`
	Component string `koanf:"component"`
}

// ExectimeConfig configures which call sites are timed.
type ExectimeConfig struct {
	// Namespaces restricts type-level targets to types whose import path
	// starts with one of these prefixes. Empty matches every type.
	Namespaces []string `koanf:"namespaces" validate:"dive,required"`

	// SuppressErrors selects the legacy failure policy: failures are logged
	// at warn level and the caller receives zero values and a nil error.
	SuppressErrors bool `koanf:"suppress_errors"`

	// Targets lists the marked types and methods.
	Targets []TargetConfig `koanf:"targets" validate:"dive"`
}

// TargetConfig marks a type, or one of its methods when Method is set.
type TargetConfig struct {
	Type   string `koanf:"type" validate:"required,qualified_type"`
	Method string `koanf:"method"`
	Level  string `koanf:"level" validate:"omitempty,exectime_level"`
}

// Target converts the entry to an exectime.Target.
func (t TargetConfig) Target() (exectime.Target, error) {
	level, err := exectime.ParseLevel(t.Level)
	if err != nil {
		return exectime.Target{}, fmt.Errorf("target %s: %w", t.Type, err)
	}
	return exectime.Target{Type: t.Type, Method: t.Method, Level: level}, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	return nil
}

// normalize lowercases the logging keywords so LOG_LEVEL=INFO and
// format: JSON are accepted like their lowercase forms.
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Registry builds a registry holding every configured target.
func (c *Config) Registry() (*exectime.Registry, error) {
	targets := make([]exectime.Target, 0, len(c.Exectime.Targets))
	for _, tc := range c.Exectime.Targets {
		t, err := tc.Target()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}

	reg := exectime.NewRegistry(c.Exectime.Namespaces...)
	if err := reg.Register(targets...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Options returns the interceptor options selected by the configuration.
func (c *Config) Options() []exectime.Option {
	return []exectime.Option{exectime.WithSuppressErrors(c.Exectime.SuppressErrors)}
}

// LogConfig returns the logging package configuration.
func (c *Config) LogConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Logging.Level
	lc.Format = c.Logging.Format
	lc.Caller = c.Logging.Caller
	lc.Component = c.Logging.Component
	return lc
}

// Setup initializes the global logger from cfg and returns an interceptor
// that writes through it.
func Setup(cfg *Config) (*exectime.Interceptor, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	logging.Init(cfg.LogConfig())
	logging.Debug().
		Int("targets", reg.Len()).
		Strs("namespaces", reg.Namespaces()).
		Bool("suppress_errors", cfg.Exectime.SuppressErrors).
		Msg("execution time logging configured")

	return exectime.New(logging.GlobalSink(), reg, cfg.Options()...), nil
}
