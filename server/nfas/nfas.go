// Package nfas has services for converting NFAs decoupled from the API that
// accesses them.
package nfas

import (
	"context"
	"errors"
	"fmt"

	"github.com/dekarrin/nfa2dfa/internal/automaton"
	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/table"
)

// Service is a service for converting NFA transition tables to DFAs.
//
// The zero-value of Service is ready to use and puts no limit on the size of
// the NFAs it converts.
type Service struct {
	// DefaultStart is the label of the start state for tables that do not name
	// one. If blank, table.DefaultStart is used.
	DefaultStart string

	// MaxStates is the largest number of rows a table may have. If less than
	// 1, there is no limit.
	MaxStates int
}

// Conversion is the outcome of a successful conversion.
type Conversion struct {
	NFA      automaton.NFA
	Alphabet []string
	DFA      automaton.DFA
}

// Convert normalizes t and converts the resulting NFA to a DFA.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If t has more rows than
// MaxStates, it will match nfaerrors.ErrTooLarge. If the symbols of t are
// invalid, it will match nfaerrors.ErrBadArgument. If the table cannot be
// converted it will match one of nfaerrors.ErrMalformedRow,
// nfaerrors.ErrMissingStart, or nfaerrors.ErrUndefinedState. If ctx is done
// before the conversion finishes, it will match ctx.Err().
func (svc Service) Convert(ctx context.Context, t table.Table) (Conversion, error) {
	if svc.MaxStates > 0 && len(t.Rows) > svc.MaxStates {
		msg := fmt.Sprintf("table has %d rows but at most %d are allowed", len(t.Rows), svc.MaxStates)
		return Conversion{}, nfaerrors.New(msg, nfaerrors.ErrTooLarge)
	}

	if table.Label(t.Start) == "" {
		t.Start = svc.DefaultStart
	}

	nfa, alphabet, err := table.Normalize(t)
	if err != nil {
		return Conversion{}, err
	}

	dfa, err := nfa.ToDFAContext(ctx, alphabet)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Conversion{}, nfaerrors.New("conversion did not finish", err)
		}
		return Conversion{}, err
	}

	return Conversion{NFA: nfa, Alphabet: alphabet, DFA: dfa}, nil
}
