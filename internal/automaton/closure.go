package automaton

import (
	"fmt"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
)

// ClosureTable holds the epsilon closure of every state of an NFA. It is built
// once per conversion by NFA.Closures and only read afterwards.
type ClosureTable map[string]util.StringSet

// Of returns the closure of state. If state was not one of the states the table
// was built for, the returned error will match ErrUndefinedState.
func (ct ClosureTable) Of(state string) (util.StringSet, error) {
	cl, ok := ct[state]
	if !ok {
		return nil, nfaerrors.UndefinedState(state, "")
	}
	return cl, nil
}

// OfSet returns the union of the closures of every state in X.
func (ct ClosureTable) OfSet(X util.StringSet) (util.StringSet, error) {
	all := util.NewStringSet()
	for _, s := range X.Ordered() {
		cl, err := ct.Of(s)
		if err != nil {
			return nil, err
		}
		all.AddAll(cl)
	}
	return all, nil
}

// EpsilonClosure gives the set of states reachable from state s using zero or
// more ε-moves. The result always contains s itself. Cycles of ε-moves are
// followed only once.
//
// If s is not a state of the NFA, or if an ε-move reachable from s leads to a
// state that is not defined, the returned error will match ErrUndefinedState.
func (nfa NFA) EpsilonClosure(s string) (util.StringSet, error) {
	if _, ok := nfa.states[s]; !ok {
		return nil, nfaerrors.UndefinedState(s, "")
	}

	closure := util.NewStringSet()
	checkingStates := util.Stack[string]{}
	checkingStates.Push(s)

	for !checkingStates.Empty() {
		checking := checkingStates.Pop()

		if closure.Has(checking) {
			// we've already checked it. skip.
			continue
		}

		// add it to the closure and then check it for recursive closures
		closure.Add(checking)

		for _, move := range nfa.states[checking].transitions[Epsilon] {
			if _, ok := nfa.states[move.next]; !ok {
				return nil, nfaerrors.UndefinedState(move.next, fmt.Sprintf("%s-move from %q", EpsilonDisplay, checking))
			}

			if !closure.Has(move.next) {
				checkingStates.Push(move.next)
			}
		}
	}

	return closure, nil
}

// EpsilonClosureOfSet gives the set of states reachable from some state in X
// using zero or more ε-moves.
func (nfa NFA) EpsilonClosureOfSet(X util.StringSet) (util.StringSet, error) {
	allClosures := util.NewStringSet()

	for _, s := range X.Ordered() {
		closures, err := nfa.EpsilonClosure(s)
		if err != nil {
			return nil, err
		}
		allClosures.AddAll(closures)
	}

	return allClosures, nil
}

// Closures computes the epsilon closure of every state in the NFA. The first
// error encountered, in the order states were added, is returned.
func (nfa NFA) Closures() (ClosureTable, error) {
	table := make(ClosureTable, len(nfa.states))

	for _, name := range nfa.order {
		cl, err := nfa.EpsilonClosure(name)
		if err != nil {
			return nil, err
		}
		table[name] = cl
	}

	return table, nil
}
