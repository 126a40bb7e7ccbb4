package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
)

type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeNotFound     Code = "NOT_FOUND"
	CodeRejected     Code = "BACKEND_REJECTED"
	CodeState        Code = "STATE_CONFLICT"
	CodeServer       Code = "SERVER_ERROR"
	CodeNetwork      Code = "NETWORK_ERROR"
	CodeInternal     Code = "INTERNAL_ERROR"
)

type Metadata struct {
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		PublicMessage: "session expired, sign in again",
	},
	CodeNotFound: {
		PublicMessage: "resource not found",
	},
	CodeRejected: {
		PublicMessage:  "request rejected by the server",
		DetailsAllowed: true,
	},
	CodeState: {
		PublicMessage:  "state transition disallowed",
		DetailsAllowed: true,
	},
	CodeServer: {
		PublicMessage: "the server is unavailable, try again later",
	},
	CodeNetwork: {
		PublicMessage: "could not reach the server",
	},
	CodeInternal: {
		PublicMessage: "internal error",
	},
}

// MetadataFor returns presentation metadata for a code, defaulting to internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// FromStatus maps a non-2xx backend response onto the client taxonomy. The
// backend-provided message is kept verbatim for 400s and discarded for 5xx,
// where a generic translated message is surfaced instead.
func FromStatus(status int, backendMessage string) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return New(CodeUnauthorized, MetadataFor(CodeUnauthorized).PublicMessage)
	case status == http.StatusNotFound:
		return New(CodeNotFound, MetadataFor(CodeNotFound).PublicMessage)
	case status >= 500:
		return New(CodeServer, MetadataFor(CodeServer).PublicMessage)
	case status >= 400:
		msg := strings.TrimSpace(backendMessage)
		if msg == "" {
			msg = MetadataFor(CodeRejected).PublicMessage
		}
		return New(CodeRejected, msg)
	default:
		return New(CodeInternal, fmt.Sprintf("unexpected status %d", status))
	}
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// Reasons returns the aggregated violation list when the error carries one.
func (e *Error) Reasons() []string {
	if e == nil {
		return nil
	}
	if reasons, ok := e.details.([]string); ok {
		return reasons
	}
	return nil
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
