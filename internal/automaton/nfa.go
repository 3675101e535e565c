package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
)

// NFA is a nondeterministic finite automaton whose transitions may include
// epsilon moves. The zero value is an empty NFA ready for use.
//
// States must be added with AddState before transitions are added from them.
// Transitions may name target states that have not been added (yet); such
// references are reported as ErrUndefinedState by Validate, EpsilonClosure,
// and ToDFA.
type NFA struct {
	states map[string]nfaState
	order  []string
	Start  string
}

// Copy returns a duplicate of this NFA.
func (nfa NFA) Copy() NFA {
	copied := NFA{
		Start:  nfa.Start,
		states: make(map[string]nfaState, len(nfa.states)),
		order:  make([]string, len(nfa.order)),
	}
	copy(copied.order, nfa.order)

	for k := range nfa.states {
		copied.states[k] = nfa.states[k].Copy()
	}

	return copied
}

// States returns all states in the nfa.
func (nfa NFA) States() util.StringSet {
	states := util.NewStringSet()

	for k := range nfa.states {
		states.Add(k)
	}

	return states
}

// StateNames returns the names of all states in the order they were added.
func (nfa NFA) StateNames() []string {
	names := make([]string, len(nfa.order))
	copy(names, nfa.order)
	return names
}

// Has returns whether the given state has been added to the NFA.
func (nfa NFA) Has(state string) bool {
	_, ok := nfa.states[state]
	return ok
}

// Len returns the number of states in the NFA.
func (nfa NFA) Len() int {
	return len(nfa.states)
}

// InputSymbols returns the set of all input symbols processed by some
// transition in the NFA. Epsilon is not included.
func (nfa NFA) InputSymbols() util.StringSet {
	symbols := util.NewStringSet()
	for sName := range nfa.states {
		st := nfa.states[sName]

		for a := range st.transitions {
			if a != Epsilon {
				symbols.Add(a)
			}
		}
	}

	return symbols
}

// Targets returns the names of the states that state moves to on input. The
// returned slice is in the order the transitions were added. Use Epsilon as the
// input to get epsilon moves.
func (nfa NFA) Targets(state string, input string) []string {
	st, ok := nfa.states[state]
	if !ok {
		return nil
	}

	trans := st.transitions[input]
	targets := make([]string, len(trans))
	for i := range trans {
		targets[i] = trans[i].next
	}
	return targets
}

// MOVE returns the set of states reachable with one transition from some state
// in X on input a. Purple dragon book calls this function MOVE(T, a) and it is
// on page 153 as part of algorithm 3.20.
//
// States in X that are not in the NFA contribute nothing. Targets are returned
// as-is, even if they name states that are not defined.
func (nfa NFA) MOVE(X util.StringSet, a string) util.StringSet {
	moves := util.NewStringSet()

	for s := range X {
		stateItem, ok := nfa.states[s]
		if !ok {
			continue
		}

		for _, t := range stateItem.transitions[a] {
			moves.Add(t.next)
		}
	}

	return moves
}

// Validate returns an error if the start state is not defined or if any
// transition leads to a state that is not defined. The returned error will
// match ErrMissingStart or ErrUndefinedState respectively when checked with
// errors.Is.
func (nfa NFA) Validate() error {
	if _, ok := nfa.states[nfa.Start]; !ok {
		return nfaerrors.MissingStart(nfa.Start)
	}

	for _, name := range nfa.order {
		st := nfa.states[name]
		for _, sym := range util.OrderedKeys(st.transitions) {
			for _, t := range st.transitions[sym] {
				if _, ok := nfa.states[t.next]; !ok {
					return nfaerrors.UndefinedState(t.next, fmt.Sprintf("transition %s from %q", t.String(), name))
				}
			}
		}
	}

	return nil
}

// Simulate runs the NFA on the given input and returns the set of states it
// could be in after consuming all of it. Before any input and after every
// symbol, the epsilon closure is taken. If a point is reached where no states
// are active, the empty set is returned.
func (nfa NFA) Simulate(input []string) (util.StringSet, error) {
	if _, ok := nfa.states[nfa.Start]; !ok {
		return nil, nfaerrors.MissingStart(nfa.Start)
	}

	current, err := nfa.EpsilonClosure(nfa.Start)
	if err != nil {
		return nil, err
	}

	for _, a := range input {
		if a == Epsilon {
			return nil, nfaerrors.New("epsilon cannot be used as input", nfaerrors.ErrBadArgument)
		}
		current, err = nfa.EpsilonClosureOfSet(nfa.MOVE(current, a))
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

func (nfa NFA) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))

	for i, name := range nfa.order {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[name].String())

		if i+1 < len(nfa.order) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}

// AddState adds a new state with the given name. If a state with that name
// already exists, this has no effect.
func (nfa *NFA) AddState(state string) {
	if _, ok := nfa.states[state]; ok {
		// Gr8! We are done.
		return
	}

	newState := nfaState{
		name:        state,
		transitions: make(map[string][]FATransition),
	}

	if nfa.states == nil {
		nfa.states = map[string]nfaState{}
	}

	nfa.states[state] = newState
	nfa.order = append(nfa.order, state)
}

// AddTransition adds a move from fromState to toState on input. Use Epsilon as
// the input for an epsilon move. Adding a transition that already exists has
// no effect.
//
// fromState must already exist in the NFA or this function will panic. toState
// is not checked.
func (nfa *NFA) AddTransition(fromState string, input string, toState string) {
	curFromState, ok := nfa.states[fromState]
	if !ok {
		// Can't let you do that, Starfox
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}

	curInputTransitions := curFromState.transitions[input]
	for _, t := range curInputTransitions {
		if t.next == toState {
			return
		}
	}

	newTransition := FATransition{
		input: input,
		next:  toState,
	}

	curFromState.transitions[input] = append(curInputTransitions, newTransition)
	nfa.states[fromState] = curFromState
}
