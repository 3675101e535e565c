// Package server provides an HTTP REST server that converts NFAs to DFAs.
//
// The server has these routes:
//
//	POST /api/v1/conversions - convert the NFA transition table in the body.
//	GET  /api/v1/info        - get version info on the server.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/nfa2dfa/internal/config"
	"github.com/dekarrin/nfa2dfa/server/api"
	"github.com/dekarrin/nfa2dfa/server/nfas"
)

// Server is an HTTP REST server that converts NFAs to DFAs. The zero-value of
// a Server should not be used directly; call New() to get one ready for use.
type Server struct {
	router http.Handler
	cfg    config.Config
}

// New creates a new Server from cfg. cfg must already be filled with defaults
// and valid.
func New(cfg config.Config) (Server, error) {
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("config: %w", err)
	}

	a := api.API{
		Backend: nfas.Service{
			DefaultStart: cfg.StartLabel,
			MaxStates:    cfg.MaxStates,
		},
	}

	srv := Server{
		router: newRouter(a, cfg.ConvertTimeout()),
		cfg:    cfg,
	}

	return srv, nil
}

// Handler returns the http.Handler that serves all requests to the server.
func (srv Server) Handler() http.Handler {
	return srv.router
}

// ServeForever begins listening on the address in the server config for HTTP
// REST client requests. If the address part is blank it defaults to
// "localhost".
func (srv Server) ServeForever() {
	address, port, err := config.SplitListen(srv.cfg.Listen)
	if err != nil {
		log.Fatalf("FATAL %v", err)
	}
	if address == "" {
		address = "localhost"
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, srv.router))
}
