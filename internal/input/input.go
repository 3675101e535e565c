// Package input contains readers for getting transition table rows and other
// answers typed by a user at the CLI or given by other sources of input.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader is a type that can be used for getting lines of user input.
type Reader interface {
	// ReadLine reads a single line of input with surrounding whitespace
	// removed. It will block until one is ready. Unless blank lines are
	// allowed with AllowBlank, the returned string is only empty when there
	// is an error.
	//
	// When error is io.EOF, string will always be empty. If EOF was
	// encountered on a call but some input was received, the input will be
	// returned and error will be nil, and the next call to ReadLine will
	// return "", io.EOF.
	ReadLine() (string, error)

	// AllowBlank sets whether ReadLine returns blank lines. By default it
	// skips them.
	AllowBlank(allow bool)

	// Close performs any operations required to clean the resources created
	// by the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}

// DirectReader implements Reader and reads lines from any generic input stream
// directly. It can be used generically with any io.Reader but does not
// sanitize the input of control and escape sequences.
//
// DirectReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveReader implements Reader and reads lines from stdin using a go
// implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of history, which is
// handy for re-entering a row with a typo in it. This should in general only
// be used when directly connecting to a TTY for input.
//
// InteractiveReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a new DirectReader and initializes a buffered reader
// on the provided reader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveReader and initializes
// readline. The returned InteractiveReader must have Close() called on it
// before disposal to properly teardown readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: "> ",
	}, nil
}

// Close cleans up resources associated with the DirectReader. It does not
// currently do anything, but callers should treat it as though it must be
// called.
func (dr *DirectReader) Close() error {
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveReader.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line from the input stream.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dr *DirectReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadLine reads the next line from stdin.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error. An interrupt (Ctrl-C) on an empty line is treated
// as end of input.
func (ir *InteractiveReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err == readline.ErrInterrupt && line == "" {
			return "", io.EOF
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
