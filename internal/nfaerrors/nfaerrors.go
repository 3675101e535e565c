// Package nfaerrors holds the error values returned across nfa2dfa. Notably,
// it contains the Error type, which can be created with one or more 'cause'
// errors. Calling errors.Is() on an Error with an argument consisting of any of
// the errors it has as a cause will return true.
//
// The sentinel errors ErrUndefinedState, ErrMissingStart, and ErrMalformedRow
// are the kinds of failure a conversion can end in. Callers check for them with
// errors.Is and should not compare messages.
package nfaerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedState is a cause of errors where a transition names a target
	// state that was never declared as the starting state of a row.
	ErrUndefinedState = errors.New("reference to undefined state")

	// ErrMissingStart is a cause of errors where the designated start label has
	// no corresponding row.
	ErrMissingStart = errors.New("start state is not defined")

	// ErrMalformedRow is a cause of errors where a row of a raw transition
	// table does not have one cell for every alphabet symbol plus the epsilon
	// column.
	ErrMalformedRow = errors.New("malformed transition table row")

	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
	ErrTooLarge      = errors.New("automaton exceeds the configured size limit")
)

// Error is a typed error returned by functions in nfa2dfa. It contains both a
// message explaining what happened as well as one or more error values it
// considers to be its causes. Calling errors.Is on some Error value err along
// with any value of error it holds as one of its causes will return true.
//
// If Error has at least one cause defined, the result of calling Error.Error()
// will be its primary message with the result of calling Error() on its first
// cause appended to it.
//
// Error should not be used directly; call New or Newf to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the result
// of calling Error() on its first cause if one is defined. If no message was
// defined but there is a cause, the first cause's Error() is returned alone.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of Error. The return value will be nil if no causes
// were defined for it.
//
// This function is for interaction with the errors API. It will only be used in
// Go version 1.20 and later; 1.19 will default to use of Error.Is when calling
// errors.Is on the Error.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether one of the causes of Error is the given target error.
// Causes that themselves wrap other errors are followed.
//
// This function is for interaction with the errors API.
func (e Error) Is(target error) bool {
	for i := range e.cause {
		if errors.Is(e.cause[i], target) {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes. Providing cause errors is not required, but will
// cause it to return true when it is checked against that error via a call to
// errors.Is.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}

// Newf is like New but builds the message from a format string. Causes are
// given first since the format arguments are variadic.
func Newf(causes []error, format string, a ...interface{}) Error {
	return New(fmt.Sprintf(format, a...), causes...)
}

// UndefinedState returns an Error for a reference to state that was never
// declared. context describes where the reference was found, e.g. "row q1".
func UndefinedState(state, context string) Error {
	if context == "" {
		return Newf([]error{ErrUndefinedState}, "state %q", state)
	}
	return Newf([]error{ErrUndefinedState}, "%s: state %q", context, state)
}

// MissingStart returns an Error for a start label that has no row.
func MissingStart(label string) Error {
	return Newf([]error{ErrMissingStart}, "start state %q", label)
}

// MalformedRow returns an Error for a row of a raw table that has the wrong
// number of cells. row is the 1-indexed row number.
func MalformedRow(row int, label string, got, expected int) Error {
	return Newf([]error{ErrMalformedRow}, "row %d (%q) has %d cells but needs %d", row, label, got, expected)
}

// Kind returns the short name of the failure kind of err, suitable for showing
// to a user or including in an API response. If err is not one of the
// conversion failure kinds, "" is returned.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUndefinedState):
		return "UndefinedStateReference"
	case errors.Is(err, ErrMissingStart):
		return "MissingStartState"
	case errors.Is(err, ErrMalformedRow):
		return "MalformedInputRow"
	default:
		return ""
	}
}

// Message gets the message to display to a user for the given error. For the
// conversion failure kinds, the kind name is given in front of the technical
// message. Otherwise, err.Error() is returned.
func Message(err error) string {
	kind := Kind(err)
	if kind == "" {
		return err.Error()
	}
	return kind + ": " + err.Error()
}
