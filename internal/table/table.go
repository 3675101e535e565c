// Package table turns raw transition tables, as typed by a user or read from a
// file, into NFAs ready for conversion. A raw table has one row per state; each
// row has one cell per alphabet symbol followed by a final cell for epsilon
// moves.
//
// Cells are free text. A blank cell, or one holding one of the sentinels "-",
// "NULL", or "∅", means the state has no move on that column. Several targets
// are given in one cell by separating them with commas.
package table

import (
	"fmt"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/automaton"
	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
	"golang.org/x/text/unicode/norm"
)

// DefaultStart is the start label used when a Table does not give one.
const DefaultStart = "q0"

// noTargetSentinels are the cell contents, besides blank, that mean "no
// target". Compared case-insensitively.
var noTargetSentinels = []string{"-", "NULL", "∅"}

// epsilonLabels can never be used as an alphabet symbol.
var epsilonLabels = []string{automaton.EpsilonDisplay, "ε"}

// Row is one line of a raw transition table.
type Row struct {
	// State is the label of the state the moves start from.
	State string

	// Cells holds the targets on each alphabet symbol, in alphabet order,
	// followed by the targets of epsilon moves.
	Cells []string
}

// Table is a raw transition table.
type Table struct {
	// Symbols is the alphabet. Each row has one cell per symbol plus one.
	Symbols []string

	// Start is the label of the start state. If blank, DefaultStart is used.
	Start string

	Rows []Row
}

// StartLabel returns the normalized label of the start state of t.
func (t Table) StartLabel() string {
	start := Label(t.Start)
	if start == "" {
		start = DefaultStart
	}
	return start
}

// Label gives the canonical form of a state label or symbol: surrounding
// whitespace is removed and the result is in Unicode normalization form C, so
// that two labels which look the same compare the same.
func Label(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsBlank returns whether a cell means "no target".
func IsBlank(cell string) bool {
	cell = Label(cell)
	if cell == "" {
		return true
	}
	for _, s := range noTargetSentinels {
		if strings.EqualFold(cell, s) {
			return true
		}
	}
	return false
}

// ParseCell gives the target labels listed in a cell, in the order listed.
// Blank entries in a comma-separated list are skipped, so "q1,,q2" is the same
// as "q1,q2". A blank cell gives nil.
func ParseCell(cell string) []string {
	if IsBlank(cell) {
		return nil
	}

	var targets []string
	for _, part := range strings.Split(cell, ",") {
		if IsBlank(part) {
			continue
		}
		targets = append(targets, Label(part))
	}
	return targets
}

// SymbolNames gives the default names for an alphabet of n symbols: "a"
// through "z", then "aa", "ab", and so on. Returns nil if n < 1.
func SymbolNames(n int) []string {
	if n < 1 {
		return nil
	}

	names := make([]string, n)
	for i := range names {
		var name []byte
		for k := i + 1; k > 0; k /= 26 {
			k--
			name = append([]byte{byte('a' + k%26)}, name...)
		}
		names[i] = string(name)
	}
	return names
}

// ResolveSymbols works out the alphabet from an explicit list of symbols and a
// declared alphabet size, either of which may be omitted. If symbols is empty,
// SymbolNames(count) is used. If both are given, count must match the number of
// symbols. The resulting symbols are checked with CheckSymbols.
func ResolveSymbols(symbols []string, count int) ([]string, error) {
	if len(symbols) == 0 {
		if count < 1 {
			return nil, nfaerrors.New("alphabet size must be a positive integer", nfaerrors.ErrBadArgument)
		}
		return SymbolNames(count), nil
	}

	if count != 0 && count != len(symbols) {
		return nil, nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "alphabet size is %d but %d symbols were given", count, len(symbols))
	}

	resolved := make([]string, len(symbols))
	for i := range symbols {
		resolved[i] = Label(symbols[i])
	}

	if err := CheckSymbols(resolved); err != nil {
		return nil, err
	}
	return resolved, nil
}

// CheckSymbols returns an error if any symbol is blank, is an epsilon label,
// contains a comma, or appears more than once.
func CheckSymbols(symbols []string) error {
	seen := util.NewStringSet()
	for i, a := range symbols {
		if a == "" {
			return nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "symbol %d is blank", i+1)
		}
		for _, eps := range epsilonLabels {
			if a == eps {
				return nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "symbol %d: %q is reserved for epsilon", i+1, a)
			}
		}
		if strings.Contains(a, ",") {
			return nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "symbol %d: %q contains a comma", i+1, a)
		}
		if seen.Has(a) {
			return nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "symbol %q is given more than once", a)
		}
		seen.Add(a)
	}
	return nil
}

// Normalize checks t and builds the NFA it describes. The returned alphabet is
// t's symbols in canonical form, in order; it is what the NFA should be
// converted over.
//
// Every row must have exactly one cell per symbol plus one for epsilon, or the
// returned error matches ErrMalformedRow; no row is used until all rows are
// checked. Rows that give the same state label are merged into the state's
// first declaration. Once all rows are added, the NFA is checked with
// NFA.Validate, so a start label with no row gives an error matching
// ErrMissingStart and a target that no row declares gives one matching
// ErrUndefinedState.
func Normalize(t Table) (automaton.NFA, []string, error) {
	symbols := make([]string, len(t.Symbols))
	for i := range t.Symbols {
		symbols[i] = Label(t.Symbols[i])
	}
	if err := CheckSymbols(symbols); err != nil {
		return automaton.NFA{}, nil, err
	}

	expectCells := len(symbols) + 1

	for i, r := range t.Rows {
		label := Label(r.State)
		if len(r.Cells) != expectCells {
			return automaton.NFA{}, nil, nfaerrors.MalformedRow(i+1, label, len(r.Cells), expectCells)
		}
		if label == "" {
			return automaton.NFA{}, nil, nfaerrors.Newf([]error{nfaerrors.ErrMalformedRow}, "row %d has no state label", i+1)
		}
		if IsBlank(label) {
			return automaton.NFA{}, nil, nfaerrors.Newf([]error{nfaerrors.ErrMalformedRow}, "row %d: state label %q is reserved to mean no target", i+1, label)
		}
		if strings.Contains(label, ",") {
			return automaton.NFA{}, nil, nfaerrors.Newf([]error{nfaerrors.ErrMalformedRow}, "row %d: state label %q contains a comma", i+1, label)
		}
	}

	var nfa automaton.NFA

	// declare all states first so transitions can refer forward
	for _, r := range t.Rows {
		nfa.AddState(Label(r.State))
	}

	for _, r := range t.Rows {
		from := Label(r.State)
		for col, cell := range r.Cells {
			input := automaton.Epsilon
			if col < len(symbols) {
				input = symbols[col]
			}
			for _, to := range ParseCell(cell) {
				nfa.AddTransition(from, input, to)
			}
		}
	}

	nfa.Start = t.StartLabel()

	if err := nfa.Validate(); err != nil {
		return automaton.NFA{}, nil, err
	}

	return nfa, symbols, nil
}

// FromNFA gives a Table that describes the given NFA over the given alphabet,
// with one row per state in the order the states were added. Cells list
// targets in the order they were added, separated by ", ". Moves on symbols
// not in alphabet are not included.
func FromNFA(nfa automaton.NFA, alphabet []string) Table {
	t := Table{
		Symbols: make([]string, len(alphabet)),
		Start:   nfa.Start,
	}
	copy(t.Symbols, alphabet)

	for _, name := range nfa.StateNames() {
		r := Row{State: name, Cells: make([]string, len(alphabet)+1)}
		for col := range r.Cells {
			input := automaton.Epsilon
			if col < len(alphabet) {
				input = alphabet[col]
			}
			r.Cells[col] = strings.Join(nfa.Targets(name, input), ", ")
		}
		t.Rows = append(t.Rows, r)
	}

	return t
}

func (t Table) String() string {
	return fmt.Sprintf("Table{Start: %q, Symbols: %q, Rows: %d}", t.StartLabel(), t.Symbols, len(t.Rows))
}
