package automaton

import (
	"testing"

	"github.com/dekarrin/nfa2dfa/internal/nfaerrors"
	"github.com/dekarrin/nfa2dfa/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_NFA_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		nfa         map[string][]string
		start       string
		expectErrIs error
	}{
		{name: "valid", nfa: scenarioA, start: "q0"},
		{name: "start not defined", nfa: scenarioA, start: "q9", expectErrIs: nfaerrors.ErrMissingStart},
		{name: "no start", nfa: scenarioA, start: "", expectErrIs: nfaerrors.ErrMissingStart},
		{
			name: "symbol move to undefined state",
			nfa: map[string][]string{
				"q0": {"=(a)=> q4"},
			},
			start:       "q0",
			expectErrIs: nfaerrors.ErrUndefinedState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			nfa := buildNFA(tc.nfa, tc.start)

			err := nfa.Validate()

			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_NFA_MOVE(t *testing.T) {
	testCases := []struct {
		name   string
		from   []string
		input  string
		expect []string
	}{
		{name: "single state", from: []string{"7"}, input: "a", expect: []string{"8"}},
		{name: "several states", from: []string{"2", "7", "4"}, input: "a", expect: []string{"3", "8"}},
		{name: "no moves", from: []string{"10"}, input: "a", expect: nil},
		{name: "unknown state contributes nothing", from: []string{"2", "x"}, input: "a", expect: []string{"3"}},
		{name: "epsilon", from: []string{"0"}, input: Epsilon, expect: []string{"1", "7"}},
	}

	nfa := buildNFA(dragonNFA, "0")

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := nfa.MOVE(util.StringSetOf(tc.from), tc.input)

			assert.Equal(util.StringSetOf(tc.expect).StringOrdered(), actual.StringOrdered())
		})
	}
}

func Test_NFA_Simulate(t *testing.T) {
	testCases := []struct {
		name        string
		input       []string
		expect      []string
		expectErrIs error
	}{
		{name: "no input", input: nil, expect: []string{"q0"}},
		{name: "ab", input: []string{"a", "b"}, expect: []string{"q0", "q2"}},
		{name: "stuck", input: []string{"b"}, expect: nil},
		{name: "epsilon as input", input: []string{Epsilon}, expectErrIs: nfaerrors.ErrBadArgument},
	}

	nfa := buildNFA(scenarioA, "q0")

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := nfa.Simulate(tc.input)

			if tc.expectErrIs != nil {
				assert.ErrorIs(err, tc.expectErrIs)
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(util.StringSetOf(tc.expect).StringOrdered(), actual.StringOrdered())
		})
	}
}

func Test_NFA_AddTransition(t *testing.T) {
	t.Run("duplicate is ignored", func(t *testing.T) {
		assert := assert.New(t)
		nfa := NFA{}
		nfa.AddState("q0")
		nfa.AddState("q1")

		nfa.AddTransition("q0", "a", "q1")
		nfa.AddTransition("q0", "a", "q1")

		assert.Equal([]string{"q1"}, nfa.Targets("q0", "a"))
	})

	t.Run("from unknown state panics", func(t *testing.T) {
		nfa := NFA{}
		assert.Panics(t, func() {
			nfa.AddTransition("q0", "a", "q1")
		})
	})
}

func Test_NFA_InputSymbols(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(dragonNFA, "0")

	actual := nfa.InputSymbols()

	assert.Equal([]string{"a", "b"}, actual.Ordered())
}

func Test_NFA_String(t *testing.T) {
	assert := assert.New(t)
	nfa := buildNFA(scenarioA, "q0")
	expect := `<START: "q0", STATES:
	(q0 [=(a)=> q1]),
	(q1 [=(b)=> q2]),
	(q2 [=(λ)=> q0])
>`

	assert.Equal(expect, nfa.String())
}
