package nfaerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error_Is(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		target error
		expect bool
	}{
		{
			name:   "direct cause",
			err:    New("bad", ErrMissingStart),
			target: ErrMissingStart,
			expect: true,
		},
		{
			name:   "second cause",
			err:    New("bad", ErrBadArgument, ErrMalformedRow),
			target: ErrMalformedRow,
			expect: true,
		},
		{
			name:   "not a cause",
			err:    New("bad", ErrBadArgument),
			target: ErrUndefinedState,
			expect: false,
		},
		{
			name:   "wrapped in fmt.Errorf",
			err:    fmt.Errorf("converting: %w", UndefinedState("q9", "row q1")),
			target: ErrUndefinedState,
			expect: true,
		},
		{
			name:   "no causes",
			err:    New("bad"),
			target: ErrBadArgument,
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := errors.Is(tc.err, tc.target)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Error_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    Error
		expect string
	}{
		{
			name:   "message and cause",
			err:    MissingStart("q0"),
			expect: `start state "q0": start state is not defined`,
		},
		{
			name:   "cause only",
			err:    New("", ErrTooLarge),
			expect: "automaton exceeds the configured size limit",
		},
		{
			name:   "message only",
			err:    New("just this"),
			expect: "just this",
		},
		{
			name:   "undefined state without context",
			err:    UndefinedState("q9", ""),
			expect: `state "q9": reference to undefined state`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, tc.err.Error())
		})
	}
}

func Test_Message(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "malformed row",
			err:    MalformedRow(2, "q1", 2, 3),
			expect: `MalformedInputRow: row 2 ("q1") has 2 cells but needs 3: malformed transition table row`,
		},
		{
			name:   "missing start",
			err:    MissingStart("q0"),
			expect: `MissingStartState: start state "q0": start state is not defined`,
		},
		{
			name:   "other error",
			err:    errors.New("disk on fire"),
			expect: "disk on fire",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, Message(tc.err))
		})
	}
}
