package automaton

import (
	"testing"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_DFA_String(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(scenarioA, "q0")
	expect := `<START: "{q0}", STATES:
	({q0} [=(a)=> {q1}, =(b)=> ∅]),
	({q1} [=(a)=> ∅, =(b)=> {q0, q2}]),
	(∅ [=(a)=> ∅, =(b)=> ∅]),
	({q0, q2} [=(a)=> {q1}, =(b)=> ∅])
>`

	dfa, err := nfa.ToDFA([]string{"a", "b"})
	if !assert.NoError(err) {
		return
	}

	assert.Equal(expect, dfa.String())
}

func Test_DFA_Numbered(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(scenarioA, "q0")

	dfa, err := nfa.ToDFA([]string{"a", "b"})
	if !assert.NoError(err) {
		return
	}
	names := dfa.Numbered()

	assert.Equal("D0", names[dfa.Start])
	assert.Equal("D2", names[dfa.KeyOf(util.NewStringSet())])
	assert.Equal("D3", names[dfa.KeyOf(util.StringSetOf([]string{"q2", "q0"}))])
}

func Test_DFA_Simulate(t *testing.T) {
	testCases := []struct {
		name        string
		input       []string
		expect      string
		expectErrIs error
	}{
		{name: "empty input stays at start", input: nil, expect: "{q0}"},
		{name: "a", input: []string{"a"}, expect: "{q1}"},
		{name: "ab", input: []string{"a", "b"}, expect: "{q0, q2}"},
		{name: "aba", input: []string{"a", "b", "a"}, expect: "{q1}"},
		{name: "b goes dead", input: []string{"b"}, expect: "∅"},
		{name: "dead is forever", input: []string{"b", "a", "b"}, expect: "∅"},
		{name: "symbol not in alphabet", input: []string{"a", "c"}, expectErrIs: nfaerrors.ErrBadArgument},
	}

	nfa := buildNFA(scenarioA, "q0")
	dfa, err := nfa.ToDFA([]string{"a", "b"})
	if err != nil {
		t.Fatalf("could not build DFA: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := dfa.Simulate(tc.input)

			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, dfa.Label(actual))
		})
	}
}

func Test_DFA_Validate(t *testing.T) {
	good := func() DFA {
		nfa := buildNFA(scenarioA, "q0")
		dfa, err := nfa.ToDFA([]string{"a", "b"})
		if err != nil {
			panic(err.Error())
		}
		return dfa
	}

	testCases := []struct {
		name      string
		mutate    func(dfa *DFA)
		expectErr bool
	}{
		{
			name:   "as constructed",
			mutate: func(dfa *DFA) {},
		},
		{
			name:      "missing start",
			mutate:    func(dfa *DFA) { dfa.Start = "nope" },
			expectErr: true,
		},
		{
			name: "missing transition",
			mutate: func(dfa *DFA) {
				delete(dfa.states[dfa.Start].transitions, "b")
			},
			expectErr: true,
		},
		{
			name: "transition to nowhere",
			mutate: func(dfa *DFA) {
				dfa.setTransition(dfa.Start, "a", "nowhere")
			},
			expectErr: true,
		},
		{
			name: "unreachable state",
			mutate: func(dfa *DFA) {
				key, _ := dfa.addState(util.StringSetOf([]string{"zz"}))
				dfa.setTransition(key, "a", key)
				dfa.setTransition(key, "b", key)
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			dfa := good()
			tc.mutate(&dfa)

			err := dfa.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_DFA_BinaryRoundTrip(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(dragonNFA, "0")
	dfa, err := nfa.ToDFA([]string{"b", "a"})
	if !assert.NoError(err) {
		return
	}

	data, err := dfa.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded DFA
	err = decoded.UnmarshalBinary(data)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(dfa.String(), decoded.String())
	assert.Equal(dfa.States(), decoded.States())
	assert.Equal([]string{"b", "a"}, decoded.Alphabet())
	assert.NoError(decoded.Validate())
}

func Test_DFA_UnmarshalBinary_bad(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(scenarioA, "q0")
	dfa, err := nfa.ToDFA([]string{"a", "b"})
	if !assert.NoError(err) {
		return
	}
	data, err := dfa.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded DFA
	err = decoded.UnmarshalBinary(data[:len(data)/2])

	assert.Error(err)
	assert.Equal(0, decoded.Len(), "target modified on error")
}

func Test_parseFATransition(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    FATransition
		expectErr bool
	}{
		{name: "symbol", input: "=(a)=> q1", expect: FATransition{input: "a", next: "q1"}},
		{name: "lambda", input: "=(λ)=> q1", expect: FATransition{input: Epsilon, next: "q1"}},
		{name: "epsilon", input: "=(ε)=> q1", expect: FATransition{input: Epsilon, next: "q1"}},
		{name: "next with spaces", input: "=(a)=> {q0, q1}", expect: FATransition{input: "a", next: "{q0, q1}"}},
		{name: "no arrow", input: "a q1", expectErr: true},
		{name: "no next", input: "=(a)=>", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := parseFATransition(tc.input)

			if tc.expectErr {
				assert.Error(err)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)
			if tc.name != "epsilon" {
				assert.Equal(tc.input, actual.String(), "does not print back the same")
			}
		})
	}
}
