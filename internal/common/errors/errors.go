// Package errors provides standardized error handling for the compliance
// report pipeline. Recovered failures travel up the call chain as typed
// values so tests can assert on them without capturing output streams.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Resolution errors are fatal to the request, not to the process.
	ErrCodeResolutionFailed    ErrorCode = "RESOLUTION_FAILED"
	ErrCodeGeocoderUnreachable ErrorCode = "GEOCODER_UNREACHABLE"

	// Fetch errors are contained at strategy or category scope.
	ErrCodeStrategyMiss        ErrorCode = "STRATEGY_MISS"
	ErrCodeCategoryFetchFailed ErrorCode = "CATEGORY_FETCH_FAILED"
	ErrCodeGatewayTimeout      ErrorCode = "GATEWAY_TIMEOUT"
	ErrCodeGatewayQueryFailed  ErrorCode = "GATEWAY_QUERY_FAILED"

	ErrCodeInvalidFilter           ErrorCode = "INVALID_FILTER"
	ErrCodeRequestValidationFailed ErrorCode = "REQUEST_VALIDATION_FAILED"
	ErrCodeUnknownJurisdiction     ErrorCode = "UNKNOWN_JURISDICTION"
	ErrCodeUnknownDataset          ErrorCode = "UNKNOWN_DATASET"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewResolutionFailedError marks an address that could not be geocoded or
// yielded no usable identifier. Not retryable: a different address is needed.
func NewResolutionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResolutionFailed,
		Message:   "Property not found or primary identifier not available",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGeocoderUnreachableError creates a retryable geocoder transport error.
// The core never retries; the caller may wrap the whole pipeline in a retry.
func NewGeocoderUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGeocoderUnreachable,
		Message:   "Geocoding service unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStrategyMissError records a single query strategy that returned nothing
// or was emptied by cross-validation. Recovered locally, never surfaced.
func NewStrategyMissError(category, strategy string) *StandardError {
	return &StandardError{
		Code:      ErrCodeStrategyMiss,
		Message:   "Query strategy returned no usable records",
		Details:   fmt.Sprintf("category: %s, strategy: %s", category, strategy),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCategoryFetchFailedError records a registry call that failed at the
// transport level. Recovered as an empty category result.
func NewCategoryFetchFailedError(category string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCategoryFetchFailed,
		Message:   "Registry fetch failed for category",
		Details:   fmt.Sprintf("category: %s, error: %s", category, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGatewayTimeoutError creates a retryable registry timeout error.
func NewGatewayTimeoutError(dataset string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGatewayTimeout,
		Message:   "Registry query timeout",
		Details:   fmt.Sprintf("dataset: %s", dataset),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGatewayQueryFailedError creates a retryable registry query error.
func NewGatewayQueryFailedError(dataset string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGatewayQueryFailed,
		Message:   "Registry query execution error",
		Details:   fmt.Sprintf("dataset: %s, error: %s", dataset, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFilterError creates a non-retryable filter construction error.
func NewInvalidFilterError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilter,
		Message:   "Invalid filter expression",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestValidationFailedError creates a non-retryable request error.
func NewRequestValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestValidationFailed,
		Message:   "Request payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownJurisdictionError creates a non-retryable jurisdiction error.
func NewUnknownJurisdictionError(jurisdiction string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownJurisdiction,
		Message:   "Unsupported jurisdiction",
		Details:   fmt.Sprintf("jurisdiction: %s", jurisdiction),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownDatasetError creates a non-retryable dataset lookup error.
func NewUnknownDatasetError(dataset string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownDataset,
		Message:   "Dataset not present in registry catalogue",
		Details:   fmt.Sprintf("dataset: %s", dataset),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
