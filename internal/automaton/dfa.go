package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
)

// DFA is a deterministic finite automaton whose states are sets of NFA states.
// A DFA is produced by NFA.ToDFA and is not modified afterwards; every state
// has exactly one transition for every symbol in the alphabet.
//
// States are referred to by an opaque key that is the same for any two states
// with the same NFA-state members. Use Members or Label to see what a key
// stands for.
type DFA struct {
	states   map[string]dfaState
	order    []string
	alphabet []string
	Start    string
}

// Copy returns a duplicate of this DFA.
func (dfa DFA) Copy() DFA {
	copied := DFA{
		Start:    dfa.Start,
		states:   make(map[string]dfaState, len(dfa.states)),
		order:    make([]string, len(dfa.order)),
		alphabet: make([]string, len(dfa.alphabet)),
	}
	copy(copied.order, dfa.order)
	copy(copied.alphabet, dfa.alphabet)

	for k := range dfa.states {
		copied.states[k] = dfa.states[k].Copy()
	}

	return copied
}

// Alphabet returns the input symbols of the DFA in the order they were given
// for the conversion.
func (dfa DFA) Alphabet() []string {
	syms := make([]string, len(dfa.alphabet))
	copy(syms, dfa.alphabet)
	return syms
}

// States returns the keys of all states in the order they were discovered. The
// start state is always first.
func (dfa DFA) States() []string {
	keys := make([]string, len(dfa.order))
	copy(keys, dfa.order)
	return keys
}

// Len returns the number of states in the DFA.
func (dfa DFA) Len() int {
	return len(dfa.states)
}

// Has returns whether the DFA has a state with the given key.
func (dfa DFA) Has(key string) bool {
	_, ok := dfa.states[key]
	return ok
}

// Members returns the NFA states that make up the DFA state with the given
// key. The returned set is a copy. Returns nil if there is no such state.
func (dfa DFA) Members(key string) util.StringSet {
	st, ok := dfa.states[key]
	if !ok {
		return nil
	}
	return st.members.Copy()
}

// Label returns the human-readable name of the DFA state with the given key,
// such as "{q0, q1}", or "∅" for the dead state.
func (dfa DFA) Label(key string) string {
	st, ok := dfa.states[key]
	if !ok {
		return ""
	}
	return SetLabel(st.members)
}

// KeyOf returns the key that a DFA state consisting of exactly the given NFA
// states would have. The state does not need to exist in the DFA.
func (dfa DFA) KeyOf(members util.StringSet) string {
	return stateKey(members)
}

// IsDead returns whether the state with the given key is the empty set of NFA
// states.
func (dfa DFA) IsDead(key string) bool {
	st, ok := dfa.states[key]
	return ok && st.members.Empty()
}

// Next returns the key of the state that the DFA moves to from state on input
// a. If there is no such state or a is not in the alphabet, ok will be false.
func (dfa DFA) Next(state string, a string) (next string, ok bool) {
	st, ok := dfa.states[state]
	if !ok {
		return "", false
	}
	next, ok = st.transitions[a]
	return next, ok
}

// Numbered returns a presentation name for every state, "D0" through "Dn" in
// the order the states were discovered. The start state is always "D0".
func (dfa DFA) Numbered() map[string]string {
	names := make(map[string]string, len(dfa.order))
	for i, key := range dfa.order {
		names[key] = fmt.Sprintf("D%d", i)
	}
	return names
}

// Simulate runs the DFA on the given input starting from the start state and
// returns the key of the state it ends in. An error is returned if a symbol of
// the input is not in the alphabet.
func (dfa DFA) Simulate(input []string) (string, error) {
	cur := dfa.Start
	if _, ok := dfa.states[cur]; !ok {
		return "", nfaerrors.MissingStart(cur)
	}

	for i, a := range input {
		next, ok := dfa.Next(cur, a)
		if !ok {
			return "", nfaerrors.Newf([]error{nfaerrors.ErrBadArgument}, "input %d: %q is not in the alphabet", i, a)
		}
		cur = next
	}

	return cur, nil
}

// Validate immediately returns an error if it finds the following:
//
// A start that isn't a state that exists.
// Any state missing a transition for some alphabet symbol.
// Any transition leading to a state that doesn't exist.
// Any state impossible to reach from the start.
func (dfa DFA) Validate() error {
	if _, ok := dfa.states[dfa.Start]; !ok {
		return fmt.Errorf("start state does not exist")
	}

	for _, key := range dfa.order {
		st := dfa.states[key]
		if len(st.transitions) != len(dfa.alphabet) {
			return fmt.Errorf("state %s has %d transitions but alphabet has %d symbols", SetLabel(st.members), len(st.transitions), len(dfa.alphabet))
		}
		for _, a := range dfa.alphabet {
			next, ok := st.transitions[a]
			if !ok {
				return fmt.Errorf("state %s has no transition on %q", SetLabel(st.members), a)
			}
			if _, ok := dfa.states[next]; !ok {
				return fmt.Errorf("state %s transitions on %q to non-existent state", SetLabel(st.members), a)
			}
		}
	}

	reachable := dfa.reachable()
	for _, key := range dfa.order {
		if !reachable.Has(key) {
			return fmt.Errorf("state %s is not reachable from the start state", SetLabel(dfa.states[key].members))
		}
	}

	return nil
}

// reachable returns the keys of all states reachable from the start by
// following transitions zero or more times.
func (dfa DFA) reachable() util.StringSet {
	seen := util.NewStringSet()
	if _, ok := dfa.states[dfa.Start]; !ok {
		return seen
	}

	var pending util.Stack[string]
	pending.Push(dfa.Start)
	for !pending.Empty() {
		key := pending.Pop()
		if seen.Has(key) {
			continue
		}
		seen.Add(key)

		for _, next := range dfa.states[key].transitions {
			if !seen.Has(next) {
				pending.Push(next)
			}
		}
	}

	return seen
}

func (dfa DFA) String() string {
	var sb strings.Builder

	startLabel := ""
	if st, ok := dfa.states[dfa.Start]; ok {
		startLabel = SetLabel(st.members)
	}

	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", startLabel))

	for i, key := range dfa.order {
		st := dfa.states[key]

		var moves strings.Builder
		for j, a := range dfa.alphabet {
			t := FATransition{input: a, next: SetLabel(dfa.states[st.transitions[a]].members)}
			moves.WriteString(t.String())
			if j+1 < len(dfa.alphabet) {
				moves.WriteString(", ")
			}
		}

		sb.WriteString("\n\t")
		sb.WriteString(fmt.Sprintf("(%s [%s])", SetLabel(st.members), moves.String()))

		if i+1 < len(dfa.order) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}

	sb.WriteRune('>')

	return sb.String()
}

// addState adds a state for the given set of NFA states if one does not already
// exist, and returns its key along with whether it was newly added.
func (dfa *DFA) addState(members util.StringSet) (string, bool) {
	key := stateKey(members)
	if _, ok := dfa.states[key]; ok {
		return key, false
	}

	if dfa.states == nil {
		dfa.states = map[string]dfaState{}
	}

	dfa.states[key] = dfaState{
		key:         key,
		members:     members,
		transitions: make(map[string]string, len(dfa.alphabet)),
	}
	dfa.order = append(dfa.order, key)
	return key, true
}

func (dfa *DFA) setTransition(from string, a string, to string) {
	dfa.states[from].transitions[a] = to
}
