// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flopsbench

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// Measurement errors
	ErrTypeMeasurement
	// Configuration errors
	ErrTypeConfig
)

// BenchError represents a structured error with context
type BenchError struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *BenchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flopsbench %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("flopsbench %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *BenchError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeMeasurement:
		return "Measurement"
	case ErrTypeConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &BenchError{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewMeasurementError creates a measurement error
func NewMeasurementError(op string, message string) error {
	return &BenchError{
		Type:    ErrTypeMeasurement,
		Op:      op,
		Message: message,
	}
}

// NewConfigError creates a configuration error
func NewConfigError(op string, message string, err error) error {
	return &BenchError{
		Type:    ErrTypeConfig,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

var (
	// ErrNoSamples indicates that no trial of a workload was long enough
	// to be accepted.
	ErrNoSamples = NewMeasurementError("Summarize", "no accepted samples")

	// ErrNilClock indicates a calibrator was built without a timestamp source
	ErrNilClock = NewInvalidArgError("NewCalibrator", "nil timestamp source")

	// ErrInvalidDepth indicates an interleave depth outside 1..MaxDepth
	ErrInvalidDepth = NewInvalidArgError("KernelFor", "interleave depth out of range")
)

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	var e *BenchError
	return errors.As(err, &e) && e.Type == ErrTypeInvalidArg
}

// IsMeasurementError checks if an error is a measurement error
func IsMeasurementError(err error) bool {
	var e *BenchError
	return errors.As(err, &e) && e.Type == ErrTypeMeasurement
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	var e *BenchError
	return errors.As(err, &e) && e.Type == ErrTypeConfig
}
