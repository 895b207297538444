// Package errors provides error handling for xarray-units.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := convert(); err != nil {
//	    return errors.Wrap(err, "failed to convert units")
//	}
//
//	// Check sentinel errors
//	if errors.Is(err, errors.ErrUnitsConversion) {
//	    // handle incompatible units
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll
)

// Sentinel errors for the units layer.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnitsNotValid indicates unit text that the parser rejects
	ErrUnitsNotValid = New("units are not valid")

	// ErrUnitsNotFound indicates an operation that requires units on an
	// array that does not carry any
	ErrUnitsNotFound = New("units not found")

	// ErrUnitsExist indicates an attempt to set units on an array that
	// already carries them without asking for an overwrite
	ErrUnitsExist = New("units already exist")

	// ErrUnitsConversion indicates that no conversion path exists between
	// two units, with or without an equivalency
	ErrUnitsConversion = New("units cannot be converted")

	// ErrFormatUnknown indicates an unknown unit format name
	ErrFormatUnknown = New("unknown units format")

	// ErrChainConfig indicates invalid accessor chain configuration:
	// a non-positive chain count, reconfiguration after the chain has
	// started, or dispatch on an already-consumed handle
	ErrChainConfig = New("invalid chain configuration")
)

// IsUnitsError reports whether err belongs to the units error taxonomy.
func IsUnitsError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnitsNotValid,
		ErrUnitsNotFound,
		ErrUnitsExist,
		ErrUnitsConversion,
		ErrFormatUnknown,
		ErrChainConfig,
	)
}

// NewUnitsNotValid creates a units-not-valid error with a formatted message.
func NewUnitsNotValid(format string, args ...interface{}) error {
	return Wrap(ErrUnitsNotValid, Newf(format, args...).Error())
}

// NewUnitsConversion creates a units-conversion error with a formatted message.
func NewUnitsConversion(format string, args ...interface{}) error {
	return Wrap(ErrUnitsConversion, Newf(format, args...).Error())
}

// NewChainConfig creates a chain-configuration error with a formatted message.
func NewChainConfig(format string, args ...interface{}) error {
	return Wrap(ErrChainConfig, Newf(format, args...).Error())
}
