package synth

import (
	"errors"
	"fmt"
)

// Code identifies a failure class surfaced to callers. The values match
// the error codes the service has always reported on the wire.
type Code string

const (
	// CodeEmptyInput means the input text was empty or whitespace-only.
	CodeEmptyInput Code = "EMPTY_TEXT"

	// CodeUnknownReference means a reference id did not resolve to a
	// concrete audio path.
	CodeUnknownReference Code = "INDEX_NOT_FOUND"

	// CodeUnknownEmotionReference means an emotion reference id did not
	// resolve in either the emotion or speaker namespace.
	CodeUnknownEmotionReference Code = "EMO_INDEX_NOT_FOUND"

	// CodeInvalidParameter means a caller-supplied control was malformed,
	// e.g. an emotion vector of the wrong dimensionality.
	CodeInvalidParameter Code = "INVALID_PARAMETER"

	// CodeGenerationFailed means the backend reported a failure. The
	// backend's detail is preserved verbatim in the wrapped cause.
	CodeGenerationFailed Code = "GENERATION_FAILED"

	// CodeInternal covers anything unexpected. It is always caught at the
	// orchestrator boundary so one failing job cannot corrupt admission
	// bookkeeping for others.
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error carries a failure code, a human-readable detail, and the
// underlying cause when one exists.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the failure code from err. Errors without a code
// classify as CodeInternal; nil has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

func codedError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
