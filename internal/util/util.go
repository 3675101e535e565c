package util

import (
	"sort"
	"strings"
)

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	var keys []string
	var idx int

	keys = make([]string, len(m))
	idx = 0

	for k := range m {
		keys[idx] = k
		idx++
	}

	sort.Strings(keys)

	return keys
}

// MakeTextList gives a comma-separated list of the items, using an oxford comma
// and "and" (or whatever conj is) before the last one if there are more than
// two. Items are used in the order given.
func MakeTextList(items []string, conj string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	} else if len(items) == 2 {
		return items[0] + " " + conj + " " + items[1]
	}

	withConj := make([]string, len(items))
	copy(withConj, items)
	withConj[len(withConj)-1] = conj + " " + withConj[len(withConj)-1]
	return strings.Join(withConj, ", ")
}
