package api

import (
	"net/http"

	"github.com/dekarrin/nfa2dfa/internal/version"
	"github.com/dekarrin/nfa2dfa/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.NFA2DFA = version.Current
	resp.Limits.MaxStates = api.Backend.MaxStates

	return result.OK(resp, "client got API info")
}
