// Package nfa2dfa contains a CLI-driven engine for reading an NFA transition
// table typed by a user, converting it to a DFA, and showing the result, over
// and over until the user quits.
package nfa2dfa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/config"
	"github.com/dekarrin/nfa2dfa/internal/input"
	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/render"
	"github.com/dekarrin/nfa2dfa/internal/table"
	"github.com/dekarrin/nfa2dfa/internal/util"
	"github.com/dekarrin/rosed"
)

// blankCell is what a user types for a cell with no target.
const blankCell = "-"

// errQuit is returned by prompts when the user types QUIT.
var errQuit = errors.New("user quit")

// Engine contains the things needed to run conversions from an interactive
// shell attached to an input stream and an output stream.
type Engine struct {
	cfg         config.Config
	in          input.Reader
	out         *bufio.Writer
	useReadline bool
	forceDirect bool
	showNFA     bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and a
// buffered writer on the output stream. cfg must already be filled with
// defaults and valid.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when the
// streams are stdin and stdout and forceDirectInput is false.
func New(inputStream io.Reader, outputStream io.Writer, cfg config.Config, forceDirectInput bool) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	eng := &Engine{
		cfg:         cfg,
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
		useReadline: !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout,
	}

	if eng.useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// ShowNFA sets whether the engine echoes the entered NFA table before showing
// the converted DFA. By default it does not.
func (eng *Engine) ShowNFA(show bool) {
	eng.showNFA = show
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// RunUntilQuit reads transition tables from the input stream and converts each
// one until the user says to stop, types QUIT at any prompt, or input ends.
// Problems with an entered table are shown to the user and do not stop the
// engine; only failures to read or write the streams are returned.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "NFA to DFA Converter\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "====================\n"

	if err := eng.output(introMsg); err != nil {
		return err
	}

	eng.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		eng.running = false
	}()

	for eng.running {
		quit, err := eng.session()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if quit {
			break
		}
	}
	eng.running = false

	return eng.output("Goodbye\n")
}

// session runs one entry of a table through to its conversion. It returns
// whether the user asked to quit.
func (eng *Engine) session() (quit bool, err error) {
	n, err := eng.inputInt("Number of input symbols: ")
	if err != nil {
		return eng.quitOnQuitErr(err)
	}
	symbols := table.SymbolNames(n)

	instructions := fmt.Sprintf("\nThe input symbols are %s.\n", util.MakeTextList(symbols, "and"))
	instructions += fmt.Sprintf("Enter one row per state as: STATE %s %s\n", strings.Join(symbols, " "), render.EpsilonHeading(eng.cfg.EpsilonLabel, symbols))
	instructions += fmt.Sprintf("Use %q for no target and separate several targets with commas (no spaces), e.g. q0,q1.\n", blankCell)
	instructions += fmt.Sprintf("The start state is %q. Enter a blank line when done.\n", eng.cfg.StartLabel)
	if err := eng.output(instructions); err != nil {
		return false, err
	}

	var rows []table.Row
	for {
		line, err := eng.inputLine(fmt.Sprintf("row %d: ", len(rows)+1))
		if err != nil {
			if err == io.EOF && len(rows) > 0 {
				break
			}
			return eng.quitOnQuitErr(err)
		}
		if line == "" {
			break
		}
		if strings.ToUpper(line) == "QUIT" {
			return true, nil
		}

		fields := strings.Fields(line)
		rows = append(rows, table.Row{State: fields[0], Cells: fields[1:]})
	}

	if len(rows) == 0 {
		if err := eng.output("No rows were entered.\n"); err != nil {
			return false, err
		}
		return eng.askAgain()
	}

	raw := table.Table{
		Symbols: symbols,
		Start:   eng.cfg.StartLabel,
		Rows:    rows,
	}

	nfa, alphabet, err := table.Normalize(raw)
	if err == nil {
		if eng.showNFA {
			if err := eng.output("\nNFA:\n" + render.NFATable(table.FromNFA(nfa, alphabet), eng.cfg.EpsilonLabel, eng.cfg.Width) + "\n"); err != nil {
				return false, err
			}
		}

		dfa, convErr := nfa.ToDFA(alphabet)
		if convErr == nil {
			if err := eng.output("\nDFA:\n" + render.DFATable(dfa, eng.cfg.Width) + "\n"); err != nil {
				return false, err
			}
		}
		err = convErr
	}

	if err != nil {
		msg := rosed.Edit("ERROR: " + nfaerrors.Message(err)).Wrap(eng.cfg.Width).String()
		if err := eng.output(msg + "\n"); err != nil {
			return false, err
		}
	}

	return eng.askAgain()
}

// askAgain asks whether to convert another table and returns whether the user
// wants to quit.
func (eng *Engine) askAgain() (quit bool, err error) {
	for {
		answer, err := eng.inputLine("\nConvert another table? (Y/N) ")
		if err != nil {
			return eng.quitOnQuitErr(err)
		}

		switch strings.ToUpper(answer) {
		case "Y", "YES":
			return false, nil
		case "N", "NO", "QUIT":
			return true, nil
		}

		if err := eng.output("Please type Y or N\n"); err != nil {
			return false, err
		}
	}
}

func (eng *Engine) quitOnQuitErr(err error) (bool, error) {
	if err == errQuit {
		return true, nil
	}
	return false, err
}

func (eng *Engine) output(s string, a ...interface{}) error {
	if len(a) > 0 {
		s = fmt.Sprintf(s, a...)
	}
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

// inputLine shows the prompt and reads one line, which may be blank.
func (eng *Engine) inputLine(prompt string) (string, error) {
	var oldPrompt string
	if eng.useReadline {
		icr := eng.in.(*input.InteractiveReader)
		oldPrompt = icr.GetPrompt()
		icr.SetPrompt(prompt)
	} else if prompt != "" {
		if err := eng.output(prompt); err != nil {
			return "", err
		}
	}

	eng.in.AllowBlank(true)
	line, err := eng.in.ReadLine()
	eng.in.AllowBlank(false)

	if eng.useReadline {
		eng.in.(*input.InteractiveReader).SetPrompt(oldPrompt)
	}
	return line, err
}

// inputInt reads a positive integer, asking again until one is given. If the
// user types QUIT, errQuit is returned.
func (eng *Engine) inputInt(prompt string) (int, error) {
	for {
		inputVal, err := eng.inputLine(prompt)
		if err != nil {
			return 0, err
		}
		if strings.ToUpper(inputVal) == "QUIT" {
			return 0, errQuit
		}

		intVal, err := strconv.Atoi(inputVal)
		if err == nil && intVal > 0 {
			return intVal, nil
		}

		msg := "Please enter a whole number greater than zero\n"
		if strings.Contains(inputVal, ".") {
			msg = "Please enter a number without a decimal dot\n"
		}
		if err := eng.output(msg); err != nil {
			return 0, err
		}
	}
}
