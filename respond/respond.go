// Package respond defines the uniform result type returned by HTTP handlers
// and the boundary conversion that turns it into a Gin response.
//
// Handlers return a Result: either Success(data) or Error(err) where err is
// an *apierr.Error. The boundary (Write, or the Handler adapter) materializes
// the success case as a JSON body and the failure case as the plain-text
// (status, body) pair produced by apierr's conversion rule.
//
// Note the asymmetry: success responses are JSON-encoded while error
// responses are plain text. Existing clients depend on the text/plain error
// bodies, so this is preserved deliberately rather than unified.
//
// Example:
//
//	r.GET("/notes/:slug", respond.Handler(func(c *gin.Context) respond.Result[Note] {
//	    n, err := svc.Get(c.Request.Context(), c.Param("slug"))
//	    if err != nil {
//	        return respond.Error[Note](apierr.NotFound().WithMessage("note not found"))
//	    }
//	    return respond.Success(*n)
//	}))
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-api-core/apierr"
)

// Result is the uniform return type for handlers: a success payload of type
// T, or a request failure. The zero value is a success wrapping T's zero
// value; handlers should always go through Success or Error.
type Result[T any] struct {
	data T
	err  *apierr.Error
}

// Success wraps data in the success case. It never fails; the boundary
// JSON-encodes the payload.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Error wraps err in the failure case. T is never constructed; it is resolved
// by the caller's declared return type. err must be non-nil.
func Error[T any](err *apierr.Error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether r is the success case.
func (r Result[T]) Ok() bool { return r.err == nil }

// Value returns the success payload (the zero value for the failure case).
func (r Result[T]) Value() T { return r.data }

// Err returns the wrapped failure, or nil for the success case.
func (r Result[T]) Err() *apierr.Error { return r.err }

// Write materializes r on the Gin context: 200 + JSON body for the success
// case, or the failure's plain-text (status, body) response.
func Write[T any](c *gin.Context, r Result[T]) {
	if r.err != nil {
		status, body := r.err.Response()
		c.String(status, body)
		return
	}
	c.JSON(http.StatusOK, r.data)
}

// Handler adapts a Result-returning function to a gin.HandlerFunc, so route
// registrations stay one-liners and no handler writes the response by hand.
func Handler[T any](fn func(*gin.Context) Result[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		Write(c, fn(c))
	}
}

// Abort ends the request with err's response and stops the middleware chain.
// Intended for middleware that rejects a request before it reaches a handler.
func Abort(c *gin.Context, err *apierr.Error) {
	status, body := err.Response()
	c.String(status, body)
	c.Abort()
}
