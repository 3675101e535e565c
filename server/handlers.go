package server

import (
	"time"

	"github.com/dekarrin/nfa2dfa/server/api"
	"github.com/dekarrin/nfa2dfa/server/middle"
	"github.com/go-chi/chi/v5"
)

func newRouter(a api.API, convertTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middle.AssignRequestID())
	r.Mount(api.PathPrefix, newAPIRouter(a, convertTimeout))

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	return r
}

func newAPIRouter(a api.API, convertTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	conversions := newConversionsRouter(a, convertTimeout)
	info := newInfoRouter(a)

	r.Mount("/conversions", conversions)
	r.HandleFunc("/conversions/", api.RedirectNoTrailingSlash)
	r.Mount("/info", info)
	r.HandleFunc("/info/", api.RedirectNoTrailingSlash)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	return r
}

func newConversionsRouter(a api.API, convertTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.With(middle.Deadline(convertTimeout)).Post("/", a.HTTPCreateConversion())

	r.MethodNotAllowed(api.MethodNotAllowed)

	return r
}

func newInfoRouter(a api.API) chi.Router {
	r := chi.NewRouter()

	r.Get("/", a.HTTPGetInfo())

	r.MethodNotAllowed(api.MethodNotAllowed)

	return r
}
