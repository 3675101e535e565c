package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/nfa2dfa/internal/automaton"
	"github.com/dekarrin/nfa2dfa/internal/config"
	"github.com/dekarrin/nfa2dfa/server/middle"
	"github.com/dekarrin/nfa2dfa/server/result"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const scenarioABody = `{
	"symbols": ["a", "b"],
	"rows": [
		{"state": "q0", "moves": ["q1", "", ""]},
		{"state": "q1", "moves": ["", "q2", ""]},
		{"state": "q2", "moves": ["", "", "q0"]}
	]
}`

func newTestServer(t *testing.T, cfg config.Config) http.Handler {
	srv, err := New(cfg.FillDefaults())
	if err != nil {
		t.Fatalf("could not create server: %v", err)
	}
	return srv.Handler()
}

func Test_Server_createConversion(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		contentType string
		maxStates   int
		expectCode  int
		expectKind  string
	}{
		{
			name:        "scenario A",
			body:        scenarioABody,
			contentType: "application/json",
			expectCode:  http.StatusOK,
		},
		{
			name:        "symbol count instead of symbols",
			body:        `{"symbol_count": 1, "rows": [{"state": "q0", "moves": ["q0", "-"]}]}`,
			contentType: "application/json; charset=utf-8",
			expectCode:  http.StatusOK,
		},
		{
			name:        "malformed row",
			body:        `{"symbols": ["a"], "rows": [{"state": "q0", "moves": ["q0"]}]}`,
			contentType: "application/json",
			expectCode:  http.StatusUnprocessableEntity,
			expectKind:  "MalformedInputRow",
		},
		{
			name:        "undefined state",
			body:        `{"symbols": ["a"], "rows": [{"state": "q0", "moves": ["q9", ""]}]}`,
			contentType: "application/json",
			expectCode:  http.StatusUnprocessableEntity,
			expectKind:  "UndefinedStateReference",
		},
		{
			name:        "missing start",
			body:        `{"start": "s", "symbols": ["a"], "rows": [{"state": "q0", "moves": ["q0", ""]}]}`,
			contentType: "application/json",
			expectCode:  http.StatusUnprocessableEntity,
			expectKind:  "MissingStartState",
		},
		{
			name:        "bad JSON",
			body:        `{"symbols": [`,
			contentType: "application/json",
			expectCode:  http.StatusBadRequest,
		},
		{
			name:        "no alphabet",
			body:        `{"rows": [{"state": "q0", "moves": [""]}]}`,
			contentType: "application/json",
			expectCode:  http.StatusBadRequest,
		},
		{
			name:        "no rows",
			body:        `{"symbols": ["a"], "rows": []}`,
			contentType: "application/json",
			expectCode:  http.StatusBadRequest,
		},
		{
			name:        "wrong content type",
			body:        scenarioABody,
			contentType: "text/plain",
			expectCode:  http.StatusUnsupportedMediaType,
		},
		{
			name:        "too many states",
			body:        scenarioABody,
			contentType: "application/json",
			maxStates:   2,
			expectCode:  http.StatusRequestEntityTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			h := newTestServer(t, config.Config{MaxStates: tc.maxStates})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			w := httptest.NewRecorder()

			// execute
			h.ServeHTTP(w, req)

			// assert
			resp := w.Result()
			assert.Equal(tc.expectCode, resp.StatusCode)
			assert.Equal("application/json", resp.Header.Get("Content-Type"))
			assert.NotEmpty(resp.Header.Get(middle.RequestIDHeader))

			if tc.expectCode == http.StatusOK {
				var actual map[string]interface{}
				if !assert.NoError(json.NewDecoder(resp.Body).Decode(&actual)) {
					return
				}
				assert.Contains(actual, "start")
				assert.Contains(actual, "states")
				assert.Contains(actual, "transitions")
				assert.Equal(resp.Header.Get(middle.RequestIDHeader), actual["request_id"])
				return
			}

			var errResp result.ErrorResponse
			if !assert.NoError(json.NewDecoder(resp.Body).Decode(&errResp)) {
				return
			}
			assert.Equal(tc.expectCode, errResp.Status)
			assert.NotEmpty(errResp.Error)
			assert.Equal(tc.expectKind, errResp.Kind)
		})
	}
}

func Test_Server_createConversion_model(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t, config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions", bytes.NewBufferString(scenarioABody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	var actual struct {
		Start       string                       `json:"start"`
		Alphabet    []string                     `json:"alphabet"`
		States      []string                     `json:"states"`
		Transitions map[string]map[string]string `json:"transitions"`
	}
	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}
	if !assert.NoError(json.Unmarshal(w.Body.Bytes(), &actual)) {
		return
	}

	assert.Equal("{q0}", actual.Start)
	assert.Equal([]string{"a", "b"}, actual.Alphabet)
	assert.Equal([]string{"{q0}", "{q1}", "∅", "{q0, q2}"}, actual.States)
	assert.Equal(map[string]map[string]string{
		"{q0}":     {"a": "{q1}", "b": "∅"},
		"{q1}":     {"a": "∅", "b": "{q0, q2}"},
		"∅":        {"a": "∅", "b": "∅"},
		"{q0, q2}": {"a": "{q1}", "b": "∅"},
	}, actual.Transitions)
}

func Test_Server_createConversion_binary(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t, config.Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions", bytes.NewBufferString(scenarioABody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/octet-stream")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	resp := w.Result()
	if !assert.Equal(http.StatusOK, resp.StatusCode) {
		return
	}
	assert.Equal("application/octet-stream", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	if !assert.NoError(err) {
		return
	}
	var dfa automaton.DFA
	if !assert.NoError(dfa.UnmarshalBinary(data)) {
		return
	}
	assert.Equal(4, dfa.Len())
	assert.Equal("{q0}", dfa.Label(dfa.Start))
}

func Test_Server_requestID(t *testing.T) {
	assert := assert.New(t)
	h := newTestServer(t, config.Config{})
	given := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	req.Header.Set(middle.RequestIDHeader, given)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(http.StatusOK, w.Code)
	assert.Equal(given, w.Header().Get(middle.RequestIDHeader))
}

func Test_Server_routes(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		expectCode int
	}{
		{name: "info", method: http.MethodGet, path: "/api/v1/info", expectCode: http.StatusOK},
		{name: "info trailing slash", method: http.MethodGet, path: "/api/v1/info/", expectCode: http.StatusPermanentRedirect},
		{name: "get conversions", method: http.MethodGet, path: "/api/v1/conversions", expectCode: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/users", expectCode: http.StatusNotFound},
		{name: "outside api", method: http.MethodGet, path: "/", expectCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			h := newTestServer(t, config.Config{})
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			// execute
			h.ServeHTTP(w, req)

			// assert
			assert.Equal(tc.expectCode, w.Code)
		})
	}
}

func Test_New_badConfig(t *testing.T) {
	assert := assert.New(t)

	_, err := New(config.Config{})

	assert.Error(err)
}
