package automaton

import (
	"fmt"

	"github.com/dekarrin/nfa2dfa/internal/util"
	"github.com/dekarrin/rezi"
)

// This file contains the binary encoding of DFAs. All values are encoded with
// rezi, and states are written in discovery order so that decoding gives back a
// DFA that lists its states the same way.

func (ds dfaState) MarshalBinary() ([]byte, error) {
	var data []byte

	members := ds.members.Ordered()
	data = append(data, rezi.EncInt(len(members))...)
	for _, m := range members {
		data = append(data, rezi.EncString(m)...)
	}

	syms := util.OrderedKeys(ds.transitions)
	data = append(data, rezi.EncInt(len(syms))...)
	for _, a := range syms {
		data = append(data, rezi.EncString(a)...)
		data = append(data, rezi.EncString(ds.transitions[a])...)
	}

	return data, nil
}

func (ds *dfaState) UnmarshalBinary(data []byte) error {
	var err error
	var n, count int

	count, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decoding member count: %w", err)
	}
	data = data[n:]

	ds.members = util.NewStringSet()
	for i := 0; i < count; i++ {
		var m string
		m, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("decoding member %d: %w", i, err)
		}
		data = data[n:]
		ds.members.Add(m)
	}
	ds.key = stateKey(ds.members)

	count, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decoding transition count: %w", err)
	}
	data = data[n:]

	ds.transitions = make(map[string]string, count)
	for i := 0; i < count; i++ {
		var a, next string
		a, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("decoding transition %d symbol: %w", i, err)
		}
		data = data[n:]

		next, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("decoding transition %d target: %w", i, err)
		}
		data = data[n:]

		ds.transitions[a] = next
	}

	return nil
}

// MarshalBinary encodes the DFA into bytes. It implements
// encoding.BinaryMarshaler and never returns a non-nil error.
func (dfa DFA) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(dfa.Start)...)

	data = append(data, rezi.EncInt(len(dfa.alphabet))...)
	for _, a := range dfa.alphabet {
		data = append(data, rezi.EncString(a)...)
	}

	data = append(data, rezi.EncInt(len(dfa.order))...)
	for _, key := range dfa.order {
		data = append(data, rezi.EncBinary(dfa.states[key])...)
	}

	return data, nil
}

// UnmarshalBinary decodes bytes created with MarshalBinary into the DFA. It
// implements encoding.BinaryUnmarshaler. The decoded DFA is checked with
// Validate before it is accepted; on any error dfa is left unmodified.
func (dfa *DFA) UnmarshalBinary(data []byte) error {
	var err error
	var n, count int
	decoded := DFA{states: map[string]dfaState{}}

	decoded.Start, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("decoding start: %w", err)
	}
	data = data[n:]

	count, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decoding alphabet size: %w", err)
	}
	data = data[n:]

	for i := 0; i < count; i++ {
		var a string
		a, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("decoding alphabet symbol %d: %w", i, err)
		}
		data = data[n:]
		decoded.alphabet = append(decoded.alphabet, a)
	}

	count, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("decoding state count: %w", err)
	}
	data = data[n:]

	for i := 0; i < count; i++ {
		var st dfaState
		n, err = rezi.DecBinary(data, &st)
		if err != nil {
			return fmt.Errorf("decoding state %d: %w", i, err)
		}
		data = data[n:]

		if _, ok := decoded.states[st.key]; ok {
			return fmt.Errorf("decoding state %d: duplicate state %s", i, SetLabel(st.members))
		}
		decoded.states[st.key] = st
		decoded.order = append(decoded.order, st.key)
	}

	if len(decoded.order) > 0 && decoded.order[0] != decoded.Start {
		return fmt.Errorf("decoded start state is not the first state")
	}

	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("decoded DFA is not valid: %w", err)
	}

	*dfa = decoded
	return nil
}
