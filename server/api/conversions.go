package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/render"
	"github.com/dekarrin/nfa2dfa/server/middle"
	"github.com/dekarrin/nfa2dfa/server/result"
)

// HTTPCreateConversion returns a HandlerFunc that converts the NFA transition
// table in the request body to a DFA. The DFA is given as JSON, or as its
// binary encoding if the request accepts application/octet-stream.
func (api API) HTTPCreateConversion() http.HandlerFunc {
	return Endpoint(api.epCreateConversion)
}

func (api API) epCreateConversion(req *http.Request) result.Result {
	var convReq ConversionRequest
	if err := parseJSON(req, &convReq); err != nil {
		if errors.Is(err, nfaerrors.ErrTooLarge) {
			return result.TooLarge(err.Error(), err.Error())
		}
		if errors.Is(err, nfaerrors.ErrBodyUnmarshal) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.UnsupportedMediaType(err.Error(), err.Error())
	}

	if len(convReq.Rows) == 0 {
		return result.BadRequest("rows: must not be empty")
	}

	t, err := convReq.toTable()
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	conv, err := api.Backend.Convert(req.Context(), t)
	if err != nil {
		switch {
		case errors.Is(err, nfaerrors.ErrTooLarge):
			return result.TooLarge(err.Error(), err.Error())
		case errors.Is(err, nfaerrors.ErrBadArgument):
			return result.BadRequest(err.Error(), err.Error())
		case nfaerrors.Kind(err) != "":
			return result.Unprocessable(nfaerrors.Kind(err), err.Error(), "could not convert: %s", nfaerrors.Message(err))
		case req.Context().Err() != nil:
			return result.Unavailable("The conversion took too long and was stopped", err.Error())
		default:
			return result.InternalServerError("could not convert: " + err.Error())
		}
	}

	msg := "converted %d-state NFA to %d-state DFA"

	if acceptsBinary(req) {
		data, err := conv.DFA.MarshalBinary()
		if err != nil {
			return result.InternalServerError("could not encode DFA: " + err.Error())
		}
		return result.Binary(data, msg+" (binary)", conv.NFA.Len(), conv.DFA.Len())
	}

	resp := ConversionModel{
		RequestID: middle.GetRequestID(req),
		Model:     render.NewModel(conv.DFA),
	}
	return result.OK(resp, msg, conv.NFA.Len(), conv.DFA.Len())
}

// acceptsBinary returns whether the Accept header of req asks for
// application/octet-stream.
func acceptsBinary(req *http.Request) bool {
	for _, part := range strings.Split(req.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.EqualFold(mediaType, "application/octet-stream") {
			return true
		}
	}
	return false
}
