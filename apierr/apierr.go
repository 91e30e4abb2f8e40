// Package apierr represents common HTTP API failures as typed values with
// optional custom messages.
//
// It defines a closed set of failure kinds, one per supported HTTP error
// category, plus an escape hatch (Other) carrying an arbitrary status code.
// Each value can be materialized as a wire-level (status, body) pair via
// Response(), which is the single conversion rule used by the transport
// boundary (see package respond).
//
// Conventions:
//   - Values are built with the per-kind constructors, never by hand.
//   - A message attached with WithMessage is used verbatim as the response
//     body; without one, the kind's default message is used.
//   - Other's numeric code is validated lazily at conversion time. Codes
//     outside the valid HTTP range fall back to 500 Internal Server Error
//     while the resolved message is kept.
//   - Conversion is deterministic and side-effect-free: no logging, no
//     mutation, no I/O.
//
// Example:
//
//	// With custom message
//	apierr.NotFound().WithMessage("User profile not found")
//
//	// Without message (default "Unauthorized" body)
//	apierr.Unauthorized()
//
//	// Custom status code
//	apierr.Other(418).WithMessage("I'm a teapot")
package apierr

import "net/http"

// kind identifies one failure category. The set is closed: callers construct
// values only through the exported constructors below.
type kind uint8

const (
	// The zero value maps to an internal server error so that an
	// accidentally zero-valued Error still produces a sane response.
	kindInternal kind = iota
	kindBadRequest
	kindNotFound
	kindUnauthorized
	kindForbidden
	kindConflict
	kindTooManyRequests
	kindServiceUnavailable
	kindGatewayTimeout
	kindOther
)

// Error is a request failure headed for an HTTP response.
//
// Error values are immutable: WithMessage returns a copy. They are safe to
// share across goroutines.
type Error struct {
	kind kind
	code int     // caller-supplied status; meaningful for Other only
	msg  *string // nil means "use the kind's default message"
}

// BadRequest returns a 400 Bad Request failure.
func BadRequest() *Error { return &Error{kind: kindBadRequest} }

// NotFound returns a 404 Not Found failure.
func NotFound() *Error { return &Error{kind: kindNotFound} }

// InternalServerError returns a 500 Internal Server Error failure.
func InternalServerError() *Error { return &Error{kind: kindInternal} }

// Unauthorized returns a 401 Unauthorized failure.
func Unauthorized() *Error { return &Error{kind: kindUnauthorized} }

// Forbidden returns a 403 Forbidden failure.
func Forbidden() *Error { return &Error{kind: kindForbidden} }

// Conflict returns a 409 Conflict failure.
func Conflict() *Error { return &Error{kind: kindConflict} }

// TooManyRequests returns a 429 Too Many Requests failure.
func TooManyRequests() *Error { return &Error{kind: kindTooManyRequests} }

// ServiceUnavailable returns a 503 Service Unavailable failure.
func ServiceUnavailable() *Error { return &Error{kind: kindServiceUnavailable} }

// GatewayTimeout returns a 504 Gateway Timeout failure.
func GatewayTimeout() *Error { return &Error{kind: kindGatewayTimeout} }

// Other returns a failure with a caller-supplied status code. The code is not
// validated here; Response() substitutes 500 when it is outside the valid
// HTTP status range.
func Other(code int) *Error { return &Error{kind: kindOther, code: code} }

// WithMessage returns a copy of e carrying msg as its response body.
//
// The message is used verbatim, so an explicitly empty message produces an
// empty body (distinct from no message at all, which selects the default).
func (e *Error) WithMessage(msg string) *Error {
	e2 := *e
	e2.msg = &msg
	return &e2
}

// Response converts e into its wire-level (status, body) pair.
//
// The status is fixed per kind, except Other which uses its own code (or 500
// when that code is invalid). The body is the attached message when present,
// otherwise the kind's default. Pure function: same input, same output.
func (e *Error) Response() (status int, body string) {
	var def string
	switch e.kind {
	case kindBadRequest:
		status, def = http.StatusBadRequest, "Bad Request"
	case kindNotFound:
		status, def = http.StatusNotFound, "Not Found"
	case kindUnauthorized:
		status, def = http.StatusUnauthorized, "Unauthorized"
	case kindForbidden:
		status, def = http.StatusForbidden, "Forbidden"
	case kindConflict:
		status, def = http.StatusConflict, "Conflict"
	case kindTooManyRequests:
		status, def = http.StatusTooManyRequests, "Too Many Requests"
	case kindServiceUnavailable:
		status, def = http.StatusServiceUnavailable, "Service Unavailable"
	case kindGatewayTimeout:
		status, def = http.StatusGatewayTimeout, "Gateway Timeout"
	case kindOther:
		status, def = e.code, "Other Error"
		if !validStatus(e.code) {
			status = http.StatusInternalServerError
		}
	default: // kindInternal and the zero value
		status, def = http.StatusInternalServerError, "Internal Server Error"
	}

	body = def
	if e.msg != nil {
		body = *e.msg
	}
	return status, body
}

// Status returns the status code Response would produce.
func (e *Error) Status() int {
	status, _ := e.Response()
	return status
}

// Error implements the error interface. It returns the resolved body text so
// values flow naturally through ordinary error returns and log fields.
func (e *Error) Error() string {
	_, body := e.Response()
	return body
}

// validStatus reports whether code is inside the registrable HTTP status
// range (RFC 9110 §15: three-digit codes 100-599).
func validStatus(code int) bool {
	return code >= 100 && code <= 599
}
