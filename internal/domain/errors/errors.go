// Package errors defines application-specific errors with HTTP mappings.
package errors

import (
	"net/http"

	"grocery/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrOffline is returned when a refresh is requested while the
	// connectivity monitor reports offline. No network I/O is attempted.
	ErrOffline = NewBaseError(
		http.StatusConflict,
		"OFFLINE",
		"Offline, using cached data",
		"",
	)

	// ErrCatalogFetchFailed is returned when the remote catalog fetch fails.
	// The previously cached list stays in place; the failure is not fatal.
	ErrCatalogFetchFailed = NewBaseError(
		http.StatusBadGateway,
		"CATALOG_FETCH_FAILED",
		"Failed to fetch products from the remote catalog",
		"",
	)

	// ErrProductNotFound is returned when a product id or scanned barcode has
	// no match in the cached catalog.
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	// ErrScanCooldown is returned while scanning is paused after a failed
	// barcode lookup.
	ErrScanCooldown = NewBaseError(
		http.StatusTooManyRequests,
		"SCAN_COOLDOWN",
		"Scanning paused after a failed lookup, retry shortly",
		"",
	)

	// ErrNotificationNotFound is returned when a notification id has no match.
	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"Notification not found",
		"",
	)
)
