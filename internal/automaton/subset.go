package automaton

import (
	"context"
	"fmt"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
)

// ToDFA converts the NFA into a deterministic finite automaton over the given
// alphabet. It is the same as calling ToDFAContext with context.Background().
func (nfa NFA) ToDFA(alphabet []string) (DFA, error) {
	return nfa.ToDFAContext(context.Background(), alphabet)
}

// ToDFAContext converts the NFA into a deterministic finite automaton over the
// given alphabet using subset construction. This is an implementation of
// algorithm 3.20 from the purple dragon book.
//
// Epsilon is ignored if it appears in alphabet, as are repeats of a symbol.
// The returned DFA is complete: when no NFA state in a DFA state moves on some
// symbol, the DFA state moves to the empty set of NFA states, which in turn
// moves to itself on every symbol.
//
// If the start state of the NFA is not defined, the returned error matches
// ErrMissingStart and no construction is attempted. If any state the
// construction needs names an undefined state as a target, the returned error
// matches ErrUndefinedState. ctx is checked each time a new DFA state is taken
// off the worklist; if it is done, ctx.Err() is returned. No DFA is returned
// alongside any error.
func (nfa NFA) ToDFAContext(ctx context.Context, alphabet []string) (DFA, error) {
	if _, ok := nfa.states[nfa.Start]; !ok {
		return DFA{}, nfaerrors.MissingStart(nfa.Start)
	}

	inputSymbols := dfaAlphabet(alphabet)

	closures, err := nfa.Closures()
	if err != nil {
		return DFA{}, err
	}

	dfa := DFA{
		states:   map[string]dfaState{},
		alphabet: inputSymbols,
	}

	// initially, ε-closure(s₀) is the only state in Dstates, and it is unmarked
	Dstart := closures[nfa.Start]
	dfa.Start, _ = dfa.addState(Dstart.Copy())

	unmarked := util.Queue[string]{}
	unmarked.Enqueue(dfa.Start)

	// while ( there is an unmarked state T in Dstates )
	for !unmarked.Empty() {
		// mark T
		Tname := unmarked.Dequeue()

		if err := ctx.Err(); err != nil {
			return DFA{}, err
		}

		T := dfa.states[Tname].members

		// for ( each input symbol a )
		for _, a := range inputSymbols {
			U := util.NewStringSet()

			moves := nfa.MOVE(T, a)
			for _, t := range moves.Ordered() {
				cl, ok := closures[t]
				if !ok {
					return DFA{}, nfaerrors.UndefinedState(t, fmt.Sprintf("move on %q from %s", a, SetLabel(T)))
				}
				U.AddAll(cl)
			}

			// if U is not in Dstates, add U as an unmarked state to Dstates
			Uname, added := dfa.addState(U)
			if added {
				unmarked.Enqueue(Uname)
			}

			// Dtran[T, a] = U
			dfa.setTransition(Tname, a, Uname)
		}
	}

	return dfa, nil
}

// dfaAlphabet gives the symbols in alphabet with Epsilon and repeated symbols
// removed. Order is otherwise kept.
func dfaAlphabet(alphabet []string) []string {
	seen := util.NewStringSet()
	symbols := make([]string, 0, len(alphabet))

	for _, a := range alphabet {
		if a == Epsilon || seen.Has(a) {
			continue
		}
		seen.Add(a)
		symbols = append(symbols, a)
	}

	return symbols
}
