// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

// Package validation provides struct validation using go-playground/validator v10.
//
// It holds a thread-safe singleton validator with the custom tags used by the
// configuration schema:
//
//	exectime_level  - a severity name accepted by exectime.ParseLevel
//	qualified_type  - "<import path>.<Type>" or a bare import path, e.g. github.com/acme/svc.Bar
//
// Field names in errors are the koanf keys of the failing field, so messages
// point at the configuration entry to fix:
//
//	exectime.targets[1].level must be one of: trace debug info warn error
//
// Example usage:
//
//	type TargetConfig struct {
//	    Type  string `koanf:"type" validate:"required,qualified_type"`
//	    Level string `koanf:"level" validate:"omitempty,exectime_level"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("configuration validation failed: %w", err)
//	}
package validation
