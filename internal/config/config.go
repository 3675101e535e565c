// Package config holds the settings that control how nfa2dfa reads tables,
// presents results, and serves the HTTP API. Settings can be read from a TOML
// file, overridden by environment variables, and then by command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/nfa2dfa/internal/automaton"
)

const (
	// EnvListen is the environment variable that gives the address the server
	// listens on.
	EnvListen = "NFA2DFA_LISTEN_ADDRESS"

	// EnvConfig is the environment variable that gives the path to a config
	// file to load when none is given on the command line.
	EnvConfig = "NFA2DFA_CONFIG"
)

// Format is a way of writing out a converted DFA.
type Format string

func (f Format) String() string {
	return string(f)
}

const (
	FormatNone Format = ""
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatRezi Format = "rezi"
)

// ParseFormat parses the name of an output format. Case is ignored.
func ParseFormat(s string) (Format, error) {
	sLower := strings.ToLower(strings.TrimSpace(s))

	switch sLower {
	case FormatText.String():
		return FormatText, nil
	case FormatJSON.String():
		return FormatJSON, nil
	case FormatRezi.String():
		return FormatRezi, nil
	default:
		return FormatNone, fmt.Errorf("format not one of 'text', 'json', or 'rezi': %q", s)
	}
}

// Config is the complete configuration of nfa2dfa. The zero value is not
// valid; call FillDefaults to get one that is.
type Config struct {
	// StartLabel is the label of the start state for tables that do not name
	// one. If not set, it defaults to "q0".
	StartLabel string `toml:"start"`

	// EpsilonLabel is the heading of the epsilon column when showing an NFA.
	// It is not checked against the alphabet, which is only known per table;
	// when it equals one of the table's symbols, "λ" is shown instead.
	// If not set, it defaults to "λ".
	EpsilonLabel string `toml:"epsilon_label"`

	// Width is the number of columns text tables are laid out to. If not set,
	// it defaults to 80.
	Width int `toml:"width"`

	// Format is the output format used for a converted DFA. If not set, it
	// defaults to text.
	Format Format `toml:"output_format"`

	// Listen is the address the server listens on, in ADDRESS:PORT or :PORT
	// format. If not set, it defaults to "localhost:8080".
	Listen string `toml:"listen"`

	// MaxStates is the largest number of NFA states the server will convert
	// in one request. The DFA may have up to 2^MaxStates states, so this is
	// kept small. If not set, it defaults to 64.
	MaxStates int `toml:"max_states"`

	// ConvertTimeoutMillis is how long the server lets a single conversion
	// run, in milliseconds. If not set, it defaults to 5000.
	ConvertTimeoutMillis int `toml:"convert_timeout_ms"`
}

// ConvertTimeout returns ConvertTimeoutMillis as a time.Duration.
func (cfg Config) ConvertTimeout() time.Duration {
	return time.Millisecond * time.Duration(cfg.ConvertTimeoutMillis)
}

// FillDefaults returns a new Config identitical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if strings.TrimSpace(newCFG.StartLabel) == "" {
		newCFG.StartLabel = "q0"
	}
	if strings.TrimSpace(newCFG.EpsilonLabel) == "" {
		newCFG.EpsilonLabel = automaton.EpsilonDisplay
	}
	if newCFG.Width == 0 {
		newCFG.Width = 80
	}
	if newCFG.Format == FormatNone {
		newCFG.Format = FormatText
	}
	if newCFG.Listen == "" {
		newCFG.Listen = "localhost:8080"
	}
	if newCFG.MaxStates == 0 {
		newCFG.MaxStates = 64
	}
	if newCFG.ConvertTimeoutMillis == 0 {
		newCFG.ConvertTimeoutMillis = 5000
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.StartLabel) == "" {
		return fmt.Errorf("start: must not be blank")
	}
	if strings.Contains(cfg.StartLabel, ",") {
		return fmt.Errorf("start: must not contain a comma")
	}
	if strings.TrimSpace(cfg.EpsilonLabel) == "" {
		return fmt.Errorf("epsilon_label: must not be blank")
	}
	if cfg.Width < 20 {
		return fmt.Errorf("width: must be at least 20 but is %d", cfg.Width)
	}
	if _, err := ParseFormat(cfg.Format.String()); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	if _, _, err := SplitListen(cfg.Listen); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	if cfg.MaxStates < 1 {
		return fmt.Errorf("max_states: must be at least 1 but is %d", cfg.MaxStates)
	}
	if cfg.ConvertTimeoutMillis < 1 {
		return fmt.Errorf("convert_timeout_ms: must be at least 1 but is %d", cfg.ConvertTimeoutMillis)
	}

	return nil
}

// WithEnv returns a new Config identical to cfg but with values given by
// environment variables replacing the ones in cfg.
func (cfg Config) WithEnv() Config {
	newCFG := cfg

	if listen := os.Getenv(EnvListen); listen != "" {
		newCFG.Listen = listen
	}

	return newCFG
}

// Load reads a Config from the TOML file at path. Keys that are not part of a
// Config are an error. The returned Config does not have defaults filled.
func Load(path string) (Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return Config{}, fmt.Errorf("%q: unknown key(s): %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// SplitListen splits a listen address in ADDRESS:PORT or :PORT format into its
// address and port.
func SplitListen(listen string) (addr string, port int, err error) {
	bindParts := strings.SplitN(listen, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("%q is not in ADDRESS:PORT or :PORT format", listen)
	}

	addr = bindParts[0]
	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}
	if port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("%d is not a valid port number", port)
	}

	return addr, port, nil
}
