// Package apperr defines the ledger's error taxonomy. Services return
// *apperr.Error so handlers can map a machine-readable kind to an HTTP
// status without string matching, while the message stays human-readable.
package apperr

import "fmt"

// Kind classifies a ledger failure.
type Kind int

const (
	// KindInternal is the fallback for unexpected failures (DB errors etc.).
	KindInternal Kind = iota
	// KindNotFound — a brand or transaction id does not resolve.
	KindNotFound
	// KindInsufficientStock — requested quantity exceeds available stock.
	KindInsufficientStock
	// KindUnauthorized — owner password mismatch.
	KindUnauthorized
	// KindInvalidInput — empty cart, non-positive quantity or price.
	KindInvalidInput
	// KindNotImplemented — operation deliberately unsupported (multi-item
	// transaction deletion).
	KindNotImplemented
)

// Error carries the kind plus the message surfaced to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, never shown to clients
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// New builds an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an internal error.
func Wrap(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

// InsufficientStock builds a KindInsufficientStock error.
func InsufficientStock(format string, args ...interface{}) *Error {
	return New(KindInsufficientStock, format, args...)
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(format string, args ...interface{}) *Error {
	return New(KindUnauthorized, format, args...)
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(format string, args ...interface{}) *Error {
	return New(KindInvalidInput, format, args...)
}

// NotImplemented builds a KindNotImplemented error.
func NotImplemented(format string, args ...interface{}) *Error {
	return New(KindNotImplemented, format, args...)
}

// KindOf extracts the kind from any error; non-apperr errors are internal.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}
