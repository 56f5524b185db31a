package domain

import "errors"

// ErrorKind classifies a failure for the HTTP error envelope.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindAuth        ErrorKind = "auth"
	KindQuota       ErrorKind = "quota"
	KindProvider    ErrorKind = "provider"
	KindPersistence ErrorKind = "persistence"
	KindNotFound    ErrorKind = "not_found"
	KindUnknown     ErrorKind = "unknown"
)

// Error is the single error currency between services, repositories and
// handlers. Field is set only for validation failures.
type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ValidationError reports a missing or malformed input field.
func ValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

// AuthError reports a missing or invalid session.
func AuthError(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// QuotaError reports an exhausted free tier or a premium-gated feature.
func QuotaError(message string) *Error {
	return &Error{Kind: KindQuota, Message: message}
}

// ProviderError reports a failed external AI/image/storage call.
func ProviderError(message string, cause error) *Error {
	return &Error{Kind: KindProvider, Message: message, cause: cause}
}

// PersistenceError reports a failed or empty database write.
func PersistenceError(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, cause: cause}
}

// NotFoundError reports a reference to a record that does not exist.
func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the error kind, defaulting to KindUnknown.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
