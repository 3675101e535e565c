// Package result contains results that are used to write out API responses.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every JSON error response. Kind is only set for
// errors that come from a failed conversion.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Kind   string `json:"kind,omitempty"`
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("OK", internalMsg)
	return Response(http.StatusOK, respObj, internalMsgFmt, msgArgs...)
}

// Binary returns a Result containing an HTTP-200 whose body is exactly the
// given bytes, sent as application/octet-stream.
func Binary(data []byte, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("OK", internalMsg)
	return Result{
		Status:      http.StatusOK,
		InternalMsg: fmt.Sprintf(internalMsgFmt, msgArgs...),
		resp:        data,
		isBinary:    true,
	}
}

// BadRequest returns a Result containing an HTTP-400 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("bad request", internalMsg)
	return Err(http.StatusBadRequest, userMsg, internalMsgFmt, msgArgs...)
}

// UnsupportedMediaType returns a Result containing an HTTP-415 along with a
// more detailed message (if desired; if none is provided it defaults to a
// generic one) that is not displayed to the user.
func UnsupportedMediaType(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("unsupported media type", internalMsg)
	return Err(http.StatusUnsupportedMediaType, userMsg, internalMsgFmt, msgArgs...)
}

// Unprocessable returns a Result containing an HTTP-422 for a request that was
// well-formed but described an NFA that cannot be converted. kind is the kind
// of conversion failure and is included in the response.
func Unprocessable(kind, userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("unprocessable", internalMsg)
	r := Err(http.StatusUnprocessableEntity, userMsg, internalMsgFmt, msgArgs...)
	errResp := r.resp.(ErrorResponse)
	errResp.Kind = kind
	r.resp = errResp
	return r
}

// TooLarge returns a Result containing an HTTP-413 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func TooLarge(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("too large", internalMsg)
	return Err(http.StatusRequestEntityTooLarge, userMsg, internalMsgFmt, msgArgs...)
}

// Unavailable returns a Result containing an HTTP-503 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func Unavailable(userMsg string, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("service unavailable", internalMsg)
	return Err(http.StatusServiceUnavailable, userMsg, internalMsgFmt, msgArgs...)
}

// MethodNotAllowed returns a Result containing an HTTP-405 along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("method not allowed", internalMsg)
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, internalMsgFmt, msgArgs...)
}

// NotFound returns a Result containing an HTTP-404 response along with a more
// detailed message (if desired; if none is provided it defaults to a generic
// one) that is not displayed to the user.
func NotFound(internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("not found", internalMsg)
	return Err(http.StatusNotFound, "The requested resource was not found", internalMsgFmt, msgArgs...)
}

// InternalServerError returns a Result containing an HTTP-500 response along
// with a more detailed message that is not displayed to the user. If
// internalMsg is provided the first argument must be a string that is the
// format string and any subsequent args are passed to Sprintf with the first
// as the format string.
func InternalServerError(internalMsg ...interface{}) Result {
	internalMsgFmt, msgArgs := splitMsg("internal server error", internalMsg)
	return Err(http.StatusInternalServerError, "An internal server error occurred", internalMsgFmt, msgArgs...)
}

// Response returns a Result with a JSON body. respObj MUST NOT be nil. If
// additional values are provided they are given to internalMsg as a format
// string.
func Response(status int, respObj interface{}, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       false,
		Status:      status,
		InternalMsg: msg,
		resp:        respObj,
	}
}

// Err returns a Result with a JSON ErrorResponse body. If additional values are
// provided they are given to internalMsg as a format string.
func Err(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection returns a Result that permanently redirects the client to uri.
func Redirection(uri string) Result {
	msg := fmt.Sprintf("redirect -> %s", uri)
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: msg,
		redir:       uri,
	}
}

// TextErr is like Err but it avoids JSON encoding of any kind and writes the
// output as plain text. If additional values are provided they are given to
// internalMsg as a format string.
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	msg := fmt.Sprintf(internalMsg, v...)
	return Result{
		IsJSON:      false,
		IsErr:       true,
		Status:      status,
		InternalMsg: msg,
		resp:        userMsg,
	}
}

// Result is a response to an API request, not yet written.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp     interface{}
	isBinary bool
	redir    string // only used for redirects
	hdrs     [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of r that also sets the given header when written.
func (r Result) WithHeader(name, val string) Result {
	erCopy := r
	erCopy.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(erCopy.hdrs, r.hdrs)
	erCopy.hdrs = append(erCopy.hdrs, [2]string{name, val})
	return erCopy
}

// PrepareMarshaledResponse sets the respJSONBytes to the marshaled version of
// the response if required. If required, and there is a problem marshaling, an
// error is returned. If not required, nil error is always returned.
//
// If PrepareMarshaledResponse has been successfully called with a nil returned
// error at least once for r, calling this method again has no effect and will
// return a nil error.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w. It panics if r was never populated or cannot be
// marshaled; call PrepareMarshaledResponse first to check.
func (r Result) WriteResponse(w http.ResponseWriter) {
	// if this hasn't been properly created, panic
	if r.Status == 0 {
		panic("result not populated")
	}

	err := r.PrepareMarshaledResponse()
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.redir == "" {
			respBytes = r.respJSONBytes
		}
	} else if r.isBinary {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		respBytes = r.resp.([]byte)
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if r.Status != http.StatusNoContent && r.redir == "" {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	// if there is a redir, handle that now
	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	}

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}

// splitMsg gives the format string and arguments of an optional internal
// message, or def if there is none.
func splitMsg(def string, internalMsg []interface{}) (string, []interface{}) {
	if len(internalMsg) < 1 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}
