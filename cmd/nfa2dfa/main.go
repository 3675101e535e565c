/*
Nfa2dfa converts a nondeterministic finite automaton with epsilon moves into an
equivalent deterministic finite automaton using subset construction.

Usage:

	nfa2dfa [flags]
	nfa2dfa [flags] -t FILE

Without a table file, nfa2dfa starts an interactive session. It asks for the
number of input symbols, which are then named a, b, c, and so on, and reads one
row of the transition table per line until a blank line is entered. Each row is
the label of a state followed by one cell per symbol and a final cell for
epsilon moves. A cell of "-" means no target, and several targets are separated
by commas. The converted DFA is shown as a table and the session may be
restarted to convert another one.

With a table file, the file is converted and the DFA is written to stdout in
the chosen format. Table files are TOML:

	format = "NFA"
	type = "TABLE"
	start = "q0"
	symbols = ["a", "b"]

	[[row]]
	state = "q0"
	moves = ["q1", "", "q2"]

Each row's moves has one cell per symbol and then the epsilon cell. Instead of
symbols, symbol_count = N may be given to use the symbols a, b, c, and so on.

The flags are:

	-v, --version
		Give the current version of nfa2dfa and then exit.

	-t, --table FILE
		Convert the NFA in the given TOML table file instead of starting an
		interactive session.

	-c, --config FILE
		Load settings from the given TOML config file. If not given, will
		default to the value of environment variable NFA2DFA_CONFIG, and if that
		is not given, built-in defaults are used.

	-s, --start LABEL
		Use the given label as the start state for tables that do not name one.
		Defaults to "q0".

	-f, --format FORMAT
		Write the DFA in the given format when converting a table file. Must be
		one of "text", "json", or "rezi". Defaults to "text". Interactive
		sessions always show text.

	-w, --width N
		Lay out text tables to N columns. Defaults to 80.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty with
		stdin and stdout.

	--show-nfa
		Show the entered NFA as a table before the converted DFA.
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dekarrin/nfa2dfa"
	"github.com/dekarrin/nfa2dfa/internal/config"
	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/render"
	"github.com/dekarrin/nfa2dfa/internal/table"
	"github.com/dekarrin/nfa2dfa/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitConvertError indicates an unsuccessful program execution due to a
	// table that could not be converted.
	ExitConvertError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// with the arguments, the config, or reading the table.
	ExitInitError
)

var (
	returnCode  int = ExitSuccess
	flagVersion     = pflag.BoolP("version", "v", false, "Give the current version of nfa2dfa and then exit.")
	flagTable       = pflag.StringP("table", "t", "", "Convert the NFA in the given TOML table file.")
	flagConfig      = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagStart       = pflag.StringP("start", "s", "", "Use the given label for the start state.")
	flagFormat      = pflag.StringP("format", "f", "", "Write the DFA as one of 'text', 'json', or 'rezi'.")
	flagWidth       = pflag.IntP("width", "w", 0, "Lay out text tables to the given number of columns.")
	flagDirect      = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline.")
	flagShowNFA     = pflag.Bool("show-nfa", false, "Show the entered NFA before the converted DFA.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *flagTable != "" {
		returnCode = convertFile(*flagTable, cfg)
		return
	}

	eng, initErr := nfa2dfa.New(os.Stdin, os.Stdout, cfg, *flagDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()
	eng.ShowNFA(*flagShowNFA)

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
}

// loadConfig builds the config from the config file, then the environment,
// then the flags, each overriding the last.
func loadConfig() (config.Config, error) {
	var cfg config.Config

	cfgPath := os.Getenv(config.EnvConfig)
	if pflag.Lookup("config").Changed {
		cfgPath = *flagConfig
	}
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	cfg = cfg.WithEnv()

	if pflag.Lookup("start").Changed {
		cfg.StartLabel = *flagStart
	}
	if pflag.Lookup("width").Changed {
		cfg.Width = *flagWidth
	}
	if pflag.Lookup("format").Changed {
		f, err := config.ParseFormat(*flagFormat)
		if err != nil {
			return cfg, err
		}
		cfg.Format = f
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// convertFile converts the table in the file at path and writes the result to
// stdout. It returns the exit code to use.
func convertFile(path string, cfg config.Config) int {
	raw, err := table.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitInitError
	}
	if raw.Start == "" {
		raw.Start = cfg.StartLabel
	}

	nfa, alphabet, err := table.Normalize(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", nfaerrors.Message(err))
		if errors.Is(err, nfaerrors.ErrBadArgument) {
			return ExitInitError
		}
		return ExitConvertError
	}

	if *flagShowNFA && cfg.Format == config.FormatText {
		fmt.Printf("NFA:\n%s\n\nDFA:\n", render.NFATable(table.FromNFA(nfa, alphabet), cfg.EpsilonLabel, cfg.Width))
	}

	dfa, err := nfa.ToDFA(alphabet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", nfaerrors.Message(err))
		return ExitConvertError
	}

	data, err := render.Encode(dfa, cfg.Format, cfg.Width)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitConvertError
	}

	if _, err := os.Stdout.Write(data); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitConvertError
	}

	return ExitSuccess
}
