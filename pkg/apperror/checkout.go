package apperror

import "fmt"

// LineError records the failure of one checkout sub-request. Failures are
// collected rather than aborting the remaining lines, so the caller can
// retry exactly the lines that failed.
type LineError struct {
	Line    int    `json:"line"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewLineError creates a line error for a failed checkout sub-request
func NewLineError(line int, kind string, cause error) LineError {
	return LineError{
		Line:    line,
		Kind:    kind,
		Message: cause.Error(),
	}
}

// TransportError wraps a printer transport failure. It is never surfaced to
// the caller as a request failure; the renderer falls back to markup output.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("printer transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps a transport failure
func NewTransportError(err error) error {
	return &TransportError{Err: err}
}
