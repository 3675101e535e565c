/*
Nfa2dfad starts an nfa2dfa server and begins listening for new connections.

Usage:

	nfa2dfad [flags]
	nfa2dfad [flags] -l [[ADDRESS]:PORT]

Once started, the nfa2dfa server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var). The flag
argument must be either a full address with port, such as "192.168.0.2:6001", or
just the port preceeded by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the nfa2dfa server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		NFA2DFA_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-c, --config FILE
		Load settings from the given TOML config file. If not given, will
		default to the value of environment variable NFA2DFA_CONFIG, and if that
		is not given, built-in defaults are used.

	--max-states N
		Refuse to convert tables with more than N rows. Defaults to 64.
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dekarrin/nfa2dfa/internal/config"
	"github.com/dekarrin/nfa2dfa/internal/version"
	"github.com/dekarrin/nfa2dfa/server"
	"github.com/spf13/pflag"
)

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of the nfa2dfa server and then exit.")
	flagListen    = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagConfig    = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagMaxStates = pflag.Int("max-states", 0, "Refuse to convert tables with more than the given number of rows.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (nfa2dfa v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// assemble a server config
	var cfg config.Config

	cfgPath := os.Getenv(config.EnvConfig)
	if pflag.Lookup("config").Changed {
		cfgPath = *flagConfig
	}
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err.Error())
			os.Exit(1)
		}
	}

	cfg = cfg.WithEnv()

	if pflag.Lookup("listen").Changed {
		cfg.Listen = *flagListen
	}
	if pflag.Lookup("max-states").Changed {
		cfg.MaxStates = *flagMaxStates
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	// configuration complete, initialize the server
	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	// okay, now actually launch it
	log.Printf("INFO  Starting nfa2dfa server %s...", version.ServerCurrent)
	srv.ServeForever()
}
