// Package middle contains middleware for use with the nfa2dfa server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// RequestKey is a key in the context of a request populated by middleware in
// this package.
type RequestKey int64

const (
	RequestID RequestKey = iota
)

// RequestIDHeader is the header that carries the ID of a request in both
// directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDHandler is middleware that gives every request an ID. A client may
// choose the ID by sending a valid UUID in the X-Request-ID header; otherwise a
// new random one is made. The ID is put in the request context under RequestID
// as a string and is sent back in the X-Request-ID header of the response.
type RequestIDHandler struct {
	next http.Handler
}

func (rh *RequestIDHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(req.Header.Get(RequestIDHeader))
	if err != nil {
		id = uuid.New()
	}

	w.Header().Set(RequestIDHeader, id.String())

	ctx := context.WithValue(req.Context(), RequestID, id.String())
	req = req.WithContext(ctx)
	rh.next.ServeHTTP(w, req)
}

// AssignRequestID returns middleware that gives every request an ID.
func AssignRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return &RequestIDHandler{next: next}
	}
}

// GetRequestID returns the ID that AssignRequestID gave the request, or "" if
// it has none.
func GetRequestID(req *http.Request) string {
	id, _ := req.Context().Value(RequestID).(string)
	return id
}

// DeadlineHandler is middleware that bounds the time the rest of the chain may
// spend on a request by giving it a context with a deadline.
type DeadlineHandler struct {
	timeout time.Duration
	next    http.Handler
}

func (dh *DeadlineHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), dh.timeout)
	defer cancel()

	req = req.WithContext(ctx)
	dh.next.ServeHTTP(w, req)
}

// Deadline returns middleware that cancels the request context after timeout.
// If timeout is less than 1, no deadline is set.
func Deadline(timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if timeout < 1 {
			return next
		}
		return &DeadlineHandler{timeout: timeout, next: next}
	}
}
