package util

import (
	"sort"
	"strings"
)

// StringSet is a map[string]bool with set operations added to it. The zero
// value is a nil set, which behaves as an empty set for reads but will panic
// if added to; use NewStringSet to get one ready for use.
type StringSet map[string]bool

func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// StringSetOf creates a new StringSet containing the elements of sl. Duplicate
// elements are collapsed.
func StringSetOf(sl []string) StringSet {
	s := NewStringSet()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s StringSet) Copy() StringSet {
	newS := NewStringSet()

	for k := range s {
		newS[k] = true
	}

	return newS
}

// Union returns a new Set that is the union of s and o.
func (s StringSet) Union(o StringSet) StringSet {
	newSet := NewStringSet()
	newSet.AddAll(s)
	newSet.AddAll(o)

	return newSet
}

// Difference returns a new Set that contains the elements that are in s but not
// in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newSet := s.Copy()

	for k := range o {
		newSet.Remove(k)
	}

	return newSet
}

func (s StringSet) Empty() bool {
	return s.Len() == 0
}

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) AddAll(s2 StringSet) {
	for element := range s2 {
		s.Add(element)
	}
}

// Equal returns whether two sets have the same items. Anything other than a
// StringSet or a non-nil *StringSet is never equal.
func (s StringSet) Equal(o any) bool {
	other, ok := o.(StringSet)
	if !ok {
		otherPtr, ok := o.(*StringSet)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on.
func (s StringSet) Elements() []string {
	sl := make([]string, 0, len(s))

	for item := range s {
		sl = append(sl, item)
	}

	return sl
}

// Ordered returns the elements of s in alphabetical order.
func (s StringSet) Ordered() []string {
	sl := s.Elements()
	sort.Strings(sl)
	return sl
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized, so two sets with the same members always give the same string.
func (s StringSet) StringOrdered() string {
	return "{" + strings.Join(s.Ordered(), ", ") + "}"
}

// String shows the contents of the set. Items are not guaranteed to be in any
// particular order.
func (s StringSet) String() string {
	return "{" + strings.Join(s.Elements(), ", ") + "}"
}
