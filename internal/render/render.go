// Package render presents NFAs and DFAs to people and to other programs.
package render

import (
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/automaton"
	"github.com/dekarrin/nfa2dfa/internal/table"
	"github.com/dekarrin/nfa2dfa/internal/util"
	"github.com/dekarrin/rosed"
)

// DefaultWidth is the width tables are laid out to when none is given.
const DefaultWidth = 80

// StartMarker is put in front of the label of the start state in tables.
const StartMarker = "→ "

// StateLabel gives the display name of a DFA state made of the given NFA
// states, such as "{q0, q2}". Members are sorted. The empty set is "∅".
func StateLabel(set util.StringSet) string {
	return automaton.SetLabel(set)
}

// DFATable lays out the transitions of dfa as a text table with one row per
// state, in the order the states were discovered, and one column per alphabet
// symbol. The start state is marked with StartMarker. If width is less than 1,
// DefaultWidth is used.
func DFATable(dfa automaton.DFA, width int) string {
	if width < 1 {
		width = DefaultWidth
	}

	alphabet := dfa.Alphabet()

	header := []string{"DFA State"}
	header = append(header, alphabet...)
	data := [][]string{header}

	for _, key := range dfa.States() {
		label := dfa.Label(key)
		if key == dfa.Start {
			label = StartMarker + label
		}

		row := []string{label}
		for _, a := range alphabet {
			next, _ := dfa.Next(key, a)
			row = append(row, dfa.Label(next))
		}
		data = append(data, row)
	}

	return layoutTable(data, width)
}

// NFATable lays out a raw transition table as text with the start state
// marked, so a user can check what was entered. Cells that mean "no target" are
// shown as "-" and cells with several targets are shown comma-separated. The
// last column is headed as given by EpsilonHeading. If width is less than 1, DefaultWidth is used.
func NFATable(t table.Table, epsilonLabel string, width int) string {
	if width < 1 {
		width = DefaultWidth
	}
	epsilonLabel = EpsilonHeading(epsilonLabel, t.Symbols)

	start := t.StartLabel()

	header := []string{"NFA State"}
	for _, a := range t.Symbols {
		header = append(header, table.Label(a))
	}
	header = append(header, epsilonLabel)
	data := [][]string{header}

	for _, r := range t.Rows {
		label := table.Label(r.State)
		if label == start {
			label = StartMarker + label
		}

		row := []string{label}
		for _, cell := range r.Cells {
			targets := table.ParseCell(cell)
			if len(targets) == 0 {
				row = append(row, "-")
			} else {
				row = append(row, strings.Join(targets, ", "))
			}
		}
		data = append(data, row)
	}

	return layoutTable(data, width)
}

// EpsilonHeading gives the heading to use for the epsilon column of a table
// over symbols. It is label, unless label is blank or is the same as one of the
// symbols, in which case automaton.EpsilonDisplay is used so the columns stay
// distinguishable.
func EpsilonHeading(label string, symbols []string) string {
	label = table.Label(label)
	if label == "" {
		return automaton.EpsilonDisplay
	}
	for _, a := range symbols {
		if table.Label(a) == label {
			return automaton.EpsilonDisplay
		}
	}
	return label
}

// layoutTable lays out data as a bordered text table. The first row is the
// header; it is shown as given, since symbols that differ only in case must
// stay distinct.
func layoutTable(data [][]string, width int) string {
	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// Model is a DFA as plain data, ready to be encoded as JSON. All states are
// named by their labels.
type Model struct {
	// Start is the label of the start state.
	Start string `json:"start"`

	// Alphabet is the input symbols in the order given for the conversion.
	Alphabet []string `json:"alphabet"`

	// States is the label of every state in the order it was discovered.
	States []string `json:"states"`

	// Transitions maps each state label to a map of symbol to next state
	// label.
	Transitions map[string]map[string]string `json:"transitions"`
}

// NewModel gives the Model of dfa.
func NewModel(dfa automaton.DFA) Model {
	m := Model{
		Start:       dfa.Label(dfa.Start),
		Alphabet:    dfa.Alphabet(),
		Transitions: map[string]map[string]string{},
	}

	for _, key := range dfa.States() {
		label := dfa.Label(key)
		m.States = append(m.States, label)

		moves := make(map[string]string, len(m.Alphabet))
		for _, a := range m.Alphabet {
			next, _ := dfa.Next(key, a)
			moves[a] = dfa.Label(next)
		}
		m.Transitions[label] = moves
	}

	return m
}
