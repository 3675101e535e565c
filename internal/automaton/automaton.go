// Package automaton contains nondeterministic and deterministic finite
// automata over string-labeled states and symbols, along with the epsilon
// closure and subset construction routines that convert the former into the
// latter.
//
// An NFA is built up with AddState and AddTransition and is not modified by any
// of the conversion functions; ToDFA returns a new DFA whose states are the
// sets of NFA states reachable from the start state. Accepting states are not
// modeled; only the structure of the automata is converted.
package automaton

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/nfa2dfa/internal/util"
)

// Epsilon is the input symbol that denotes a transition which consumes no
// input. It can never be part of the alphabet of a DFA.
const Epsilon = ""

// EpsilonDisplay is how Epsilon is shown when an automaton is printed.
const EpsilonDisplay = "λ"

// FATransition is a single move of a finite automaton on some input.
type FATransition struct {
	input string
	next  string
}

func (t FATransition) Input() string {
	return t.input
}

func (t FATransition) Next() string {
	return t.next
}

func (t FATransition) String() string {
	inp := t.input
	if inp == Epsilon {
		inp = EpsilonDisplay
	}
	return fmt.Sprintf("=(%s)=> %s", inp, t.next)
}

// parseFATransition parses the output of FATransition.String back into an
// FATransition. Both "λ" and "ε" are accepted for the epsilon symbol.
func parseFATransition(s string) (FATransition, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, " ", 2)
	if len(parts) != 2 {
		return FATransition{}, fmt.Errorf("not a valid FATransition: no space: %q", s)
	}

	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	if !strings.HasPrefix(left, "=(") {
		return FATransition{}, fmt.Errorf("not a valid FATransition: left does not start with '=(': %q", left)
	}
	if !strings.HasSuffix(left, ")=>") {
		return FATransition{}, fmt.Errorf("not a valid FATransition: left does not end with ')=>': %q", left)
	}

	input := strings.TrimSuffix(strings.TrimPrefix(left, "=("), ")=>")
	if input == EpsilonDisplay || input == "ε" {
		input = Epsilon
	}

	if right == "" {
		return FATransition{}, fmt.Errorf("not a valid FATransition: bad next: %q", s)
	}

	return FATransition{input: input, next: right}, nil
}

// stateKey gives the canonical identity of a set of NFA states. Two sets have
// the same key if and only if they have the same members, regardless of the
// order in which the members were added. Each member is length-prefixed so no
// choice of state names can make two different sets collide.
func stateKey(set util.StringSet) string {
	var sb strings.Builder
	for _, name := range set.Ordered() {
		sb.WriteString(strconv.Itoa(len(name)))
		sb.WriteRune(':')
		sb.WriteString(name)
		sb.WriteRune(';')
	}
	return sb.String()
}

// SetLabel gives the human-readable name of a set of NFA states, such as
// "{q0, q2}". Members are always alphabetized. The empty set is shown as "∅".
func SetLabel(set util.StringSet) string {
	if set.Empty() {
		return "∅"
	}
	return set.StringOrdered()
}

type nfaState struct {
	name        string
	transitions map[string][]FATransition
}

func (ns nfaState) Copy() nfaState {
	copied := nfaState{
		name:        ns.name,
		transitions: make(map[string][]FATransition, len(ns.transitions)),
	}

	for sym := range ns.transitions {
		trans := make([]FATransition, len(ns.transitions[sym]))
		copy(trans, ns.transitions[sym])
		copied.transitions[sym] = trans
	}

	return copied
}

func (ns nfaState) String() string {
	var moves strings.Builder

	inputs := util.OrderedKeys(ns.transitions)

	var written int
	for _, input := range inputs {
		for _, t := range ns.transitions[input] {
			if written > 0 {
				moves.WriteString(", ")
			}
			moves.WriteString(t.String())
			written++
		}
	}

	return fmt.Sprintf("(%s [%s])", ns.name, moves.String())
}

type dfaState struct {
	key         string
	members     util.StringSet
	transitions map[string]string
}

func (ds dfaState) Copy() dfaState {
	copied := dfaState{
		key:         ds.key,
		members:     ds.members.Copy(),
		transitions: make(map[string]string, len(ds.transitions)),
	}
	for sym := range ds.transitions {
		copied.transitions[sym] = ds.transitions[sym]
	}
	return copied
}
