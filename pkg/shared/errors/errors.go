package errors

import "fmt"

// ValidationError reports input rejected locally, before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given user-facing message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ServerError represents a non-2xx response from the analyzer API. Detail
// carries the server-provided message when one was present; otherwise it holds
// the caller's fallback string.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return e.Detail
}

// NewServerError creates a ServerError, substituting fallback when the server
// returned no detail message.
func NewServerError(statusCode int, detail, fallback string) error {
	if detail == "" {
		detail = fallback
	}
	return &ServerError{StatusCode: statusCode, Detail: detail}
}

// NetworkError represents a transport-level failure with no structured body.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport error behind a flow-specific fallback message.
func NewNetworkError(message string, err error) error {
	return &NetworkError{Message: message, Err: err}
}

// ExportError reports a failed export operation. Exports never abort the
// session; callers surface the message and carry on.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates an ExportError for the given report format.
func NewExportError(format string, err error) error {
	return &ExportError{Format: format, Err: err}
}
