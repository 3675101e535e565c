package render

import (
	"encoding/json"
	"fmt"

	"github.com/dekarrin/nfa2dfa/internal/automaton"
	"github.com/dekarrin/nfa2dfa/internal/config"
)

// Encode writes out dfa in the given format. Text is the table given by
// DFATable laid out to width, followed by a newline. JSON is the indented
// encoding of the DFA's Model, followed by a newline. Rezi is the binary
// encoding given by dfa.MarshalBinary.
func Encode(dfa automaton.DFA, format config.Format, width int) ([]byte, error) {
	switch format {
	case config.FormatText, config.FormatNone:
		return []byte(DFATable(dfa, width) + "\n"), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(NewModel(dfa), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatRezi:
		data, err := dfa.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encode binary: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format: %q", format.String())
	}
}
