// Exectime - Method Execution Time Logging
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/exectime

// Package config loads the execution-time logging configuration with Koanf v2.
//
// # Loading Order
//
//  1. Defaults from defaultConfig()
//  2. YAML file: $EXECTIME_CONFIG, else the first of DefaultConfigPaths that exists
//  3. Environment variables (highest priority)
//
// # Environment Variables
//
//	LOG_LEVEL                 - trace, debug, info, warn, error, disabled (default: info)
//	LOG_FORMAT                - json, console (default: json)
//	LOG_CALLER                - include caller file:line (default: false)
//	LOG_COMPONENT             - value of the "component" field on every line
//	EXECTIME_NAMESPACES       - comma-separated import path prefixes for type-level targets
//	EXECTIME_SUPPRESS_ERRORS  - legacy failure policy (default: false)
//
// Targets are only read from the YAML file:
//
//	logging:
//	  level: debug
//	exectime:
//	  namespaces: ["github.com/acme/"]
//	  targets:
//	    - type: github.com/acme/billing.Invoice
//	      level: debug
//	    - type: github.com/acme/billing.Invoice
//	      method: Total
//	      level: warn
//
// A target without a method marks every method of the type; a method target
// overrides the type target for that method and ignores namespaces. A target
// whose type is a bare import path covers the package-level functions of
// that package.
//
// # Validation
//
// Load validates the result with go-playground/validator through the
// validation package. Errors name the configuration key at fault.
package config
