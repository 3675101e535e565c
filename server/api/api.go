// Package API provides HTTP API endpoints for the nfa2dfa server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/server/middle"
	"github.com/dekarrin/nfa2dfa/server/nfas"
	"github.com/dekarrin/nfa2dfa/server/result"
)

const (
	// PathPrefix is the prefix of all paths in the API. Routers should mount
	// a sub-router that routes all requests to the API at this path.
	PathPrefix = "/api/v1"
)

// maxBodyBytes is the largest request body that will be read.
const maxBodyBytes = 1 << 20

// API holds parameters for endpoints needed to run and a service layer that
// will perform most of the actual logic. To use API, create one and then
// assign the result of its HTTP* methods as handlers to a router or some other
// kind of server mux.
//
// This is exclusively an API for serving external requests. For direct
// programmatic access to conversions from Go code, see [nfas.Service].
type API struct {
	// Backend is the service that the API calls to perform the requested
	// actions.
	Backend nfas.Service
}

// v must be a pointer to a type. Will return error such that
// errors.Is(err, nfaerrors.ErrBodyUnmarshal) returns true if it is problem
// decoding the JSON itself.
func parseJSON(req *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || strings.ToLower(mediaType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if len(bodyData) > maxBodyBytes {
		return nfaerrors.New("request body is too large", nfaerrors.ErrTooLarge)
	}

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return nfaerrors.New("malformed JSON in request", err, nfaerrors.ErrBodyUnmarshal)
	}

	return nil
}

// EndpointFunc is an endpoint that gives the Result of handling a request.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint gives an http.HandlerFunc that calls ep and writes the Result it
// returns.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		// if this hasn't been properly created, output error directly and do not
		// try to read properties
		if r.Status == 0 {
			logHttpResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		// pre-call PrepareMarshaledResponse bc if it fails in call to
		// WriteResponse, it will panic.
		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(http.StatusInternalServerError, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			logHttpResponse("ERROR", req, newResp.Status, newResp.InternalMsg)
			newResp.WriteResponse(w)
			return
		}

		if r.IsErr {
			logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHttpResponse("INFO", req, r.Status, r.InternalMsg)
		}

		r.WriteResponse(w)
	}
}

// NotFound is an http.HandlerFunc that responds with an HTTP-404.
func NotFound(w http.ResponseWriter, req *http.Request) {
	r := result.NotFound()
	logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
	r.WriteResponse(w)
}

// MethodNotAllowed is an http.HandlerFunc that responds with an HTTP-405.
func MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	r := result.MethodNotAllowed(req)
	logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
	r.WriteResponse(w)
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same URL as the
// request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	r := result.Redirection(redirPath)
	logHttpResponse("INFO", req, r.Status, r.InternalMsg)
	r.WriteResponse(w)
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		logHttpResponse("ERROR", req, r.Status, r.InternalMsg)
		r.WriteResponse(w)
		return true
	}
	return false
}

func logHttpResponse(level string, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}

	for len(level) < 5 {
		level += " "
	}

	// we don't really care about the ephemeral port from the client end
	remoteAddrParts := strings.SplitN(req.RemoteAddr, ":", 2)
	remoteIP := remoteAddrParts[0]

	reqID := middle.GetRequestID(req)
	if reqID == "" {
		reqID = "-"
	}

	log.Printf("%s %s %s %s %s: HTTP-%d %s", level, reqID, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
