package middle

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_AssignRequestID(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		expectSame bool
	}{
		{name: "no header", header: ""},
		{name: "valid header is kept", header: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", expectSame: true},
		{name: "invalid header is replaced", header: "not-a-uuid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			var seenID string
			h := AssignRequestID()(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				seenID = GetRequestID(req)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()

			// execute
			h.ServeHTTP(w, req)

			// assert
			sentID := w.Header().Get(RequestIDHeader)
			assert.Equal(sentID, seenID)
			_, err := uuid.Parse(sentID)
			assert.NoError(err)
			if tc.expectSame {
				assert.Equal(tc.header, sentID)
			} else {
				assert.NotEqual(tc.header, sentID)
			}
		})
	}
}

func Test_GetRequestID_none(t *testing.T) {
	assert := assert.New(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal("", GetRequestID(req))
}

func Test_Deadline(t *testing.T) {
	testCases := []struct {
		name           string
		timeout        time.Duration
		expectDeadline bool
	}{
		{name: "deadline set", timeout: time.Second, expectDeadline: true},
		{name: "zero timeout sets none", timeout: 0, expectDeadline: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			var hasDeadline bool
			h := Deadline(tc.timeout)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				_, hasDeadline = req.Context().Deadline()
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			// execute
			h.ServeHTTP(httptest.NewRecorder(), req)

			// assert
			assert.Equal(tc.expectDeadline, hasDeadline)
		})
	}
}
