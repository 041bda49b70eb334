package scene

import (
	"errors"
	"fmt"
)

// The core's error taxonomy has three members:
//
//   - ConfigError: malformed interpolation or spring parameters, detected at
//     the evaluation call boundary.
//   - ValidationError: bad composition metadata, detected at registration.
//   - NotFoundError: unknown composition id at lookup.
//
// An inactive sequence window is NOT an error - Enter reports it through
// its boolean result. None of these errors is recoverable in place: they
// indicate an authoring mistake, not a transient condition, so callers fail
// fast rather than guessing a default.

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeInputRangeNotIncreasing indicates an interpolation input range
	// that is not strictly increasing.
	ErrCodeInputRangeNotIncreasing ConfigErrorCode = "INPUT_RANGE_NOT_INCREASING"

	// ErrCodeRangeLengthMismatch indicates input and output ranges of
	// different lengths.
	ErrCodeRangeLengthMismatch ConfigErrorCode = "RANGE_LENGTH_MISMATCH"

	// ErrCodeRangeTooShort indicates a range with fewer than two points.
	ErrCodeRangeTooShort ConfigErrorCode = "RANGE_TOO_SHORT"

	// ErrCodeNonFiniteRange indicates NaN or Inf in a range.
	ErrCodeNonFiniteRange ConfigErrorCode = "NON_FINITE_RANGE"

	// ErrCodeNonPositiveSpringParam indicates damping, stiffness or mass
	// at or below zero.
	ErrCodeNonPositiveSpringParam ConfigErrorCode = "NONPOSITIVE_SPRING_PARAM"

	// ErrCodeNonPositiveFPS indicates an fps at or below zero handed to an
	// evaluator.
	ErrCodeNonPositiveFPS ConfigErrorCode = "NONPOSITIVE_FPS"

	// ErrCodeUnknownEasing indicates an easing name with no registered curve.
	ErrCodeUnknownEasing ConfigErrorCode = "UNKNOWN_EASING"
)

// ConfigError reports malformed interpolation or spring parameters. It is
// surfaced immediately at the evaluation call boundary and never retried.
type ConfigError struct {
	Code    ConfigErrorCode
	Message string
	Field   string // offending parameter, when one can be named
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// ValidationErrorCode categorizes registration-time validation errors.
type ValidationErrorCode string

const (
	// ErrCodeDuplicateID indicates a composition id already registered.
	ErrCodeDuplicateID ValidationErrorCode = "DUPLICATE_ID"

	// ErrCodeEmptyID indicates a composition with an empty id.
	ErrCodeEmptyID ValidationErrorCode = "EMPTY_ID"

	// ErrCodeNonPositiveDimension indicates duration, fps, width or height
	// at or below zero.
	ErrCodeNonPositiveDimension ValidationErrorCode = "NONPOSITIVE_DIMENSION"

	// ErrCodeNilRoot indicates a composition without a root component.
	ErrCodeNilRoot ValidationErrorCode = "NIL_ROOT"
)

// ValidationError reports bad composition metadata at registration time.
type ValidationError struct {
	Code          ValidationErrorCode
	Message       string
	CompositionID string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CompositionID != "" {
		return fmt.Sprintf("%s: %s (composition=%s)", e.Code, e.Message, e.CompositionID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func newDimensionError(id, field string, got int) *ValidationError {
	return &ValidationError{
		Code:          ErrCodeNonPositiveDimension,
		Message:       fmt.Sprintf("%s must be positive, got %d", field, got),
		CompositionID: id,
	}
}

// NotFoundError reports a lookup of a composition id that was never
// registered.
type NotFoundError struct {
	CompositionID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("composition not found: %s", e.CompositionID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
