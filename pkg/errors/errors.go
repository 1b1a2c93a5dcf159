package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Business logic errors
	ErrCodeAssetNotFound       ErrorCode = "ASSET_NOT_FOUND"
	ErrCodeUnknownTicker       ErrorCode = "UNKNOWN_TICKER"
	ErrCodeUnsupportedCurrency ErrorCode = "UNSUPPORTED_CURRENCY"
	ErrCodeDataUnavailable     ErrorCode = "DATA_UNAVAILABLE"

	// System errors
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeRateLimit        ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// FolioError represents a standardized error
type FolioError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e FolioError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New creates a new FolioError
func New(code ErrorCode, message string) *FolioError {
	return &FolioError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
		Details:    make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FolioError
func Wrap(err error, code ErrorCode, message string) *FolioError {
	e := New(code, message)
	if err != nil {
		e.Details["cause"] = err.Error()
	}
	return e
}

// AddDetail adds a detail to the error
func (e *FolioError) AddDetail(key string, value interface{}) *FolioError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func getHTTPStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField,
		ErrCodeUnknownTicker, ErrCodeUnsupportedCurrency:
		return http.StatusBadRequest
	case ErrCodeAssetNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimit:
		return http.StatusTooManyRequests
	case ErrCodeStoreUnavailable, ErrCodeDataUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError creates a validation error
func ValidationError(message string) *FolioError {
	return New(ErrCodeValidation, message)
}

// InvalidInput creates an invalid input error
func InvalidInput(message string) *FolioError {
	return New(ErrCodeInvalidInput, message)
}

// NotFound creates a not found error for a resource
func NotFound(resource string) *FolioError {
	return New(ErrCodeAssetNotFound, fmt.Sprintf("%s not found", resource))
}

// StoreUnavailable creates a store unavailable error
func StoreUnavailable(err error) *FolioError {
	return Wrap(err, ErrCodeStoreUnavailable, "position store is unreachable")
}

// Internal creates an internal error
func Internal(message string) *FolioError {
	return New(ErrCodeInternal, message)
}
