package domain

import "sort"

// IndividualSet is an unordered set of individuals
type IndividualSet map[Individual]struct{}

// NewIndividualSet creates a set holding the given individuals
func NewIndividualSet(items ...Individual) IndividualSet {
	s := make(IndividualSet, len(items))
	for _, i := range items {
		s[i] = struct{}{}
	}
	return s
}

// Add inserts an individual
func (s IndividualSet) Add(i Individual) {
	s[i] = struct{}{}
}

// Has reports whether i is a member
func (s IndividualSet) Has(i Individual) bool {
	_, ok := s[i]
	return ok
}

// Equal reports whether both sets hold exactly the same individuals
func (s IndividualSet) Equal(other IndividualSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !other.Has(i) {
			return false
		}
	}
	return true
}

// Intersects reports whether the sets share at least one individual
func (s IndividualSet) Intersects(other IndividualSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for i := range small {
		if large.Has(i) {
			return true
		}
	}
	return false
}

// Intersect returns a new set with the individuals present in both
func (s IndividualSet) Intersect(other IndividualSet) IndividualSet {
	out := make(IndividualSet)
	for i := range s {
		if other.Has(i) {
			out.Add(i)
		}
	}
	return out
}

// Union returns a new set with the individuals present in either
func (s IndividualSet) Union(other IndividualSet) IndividualSet {
	out := make(IndividualSet, len(s)+len(other))
	for i := range s {
		out.Add(i)
	}
	for i := range other {
		out.Add(i)
	}
	return out
}

// Sorted returns the members in lexical order
func (s IndividualSet) Sorted() []Individual {
	out := make([]Individual, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// ClassSet is an unordered set of class expressions keyed by Key()
type ClassSet map[string]ClassExpression

// NewClassSet creates a set holding the given expressions
func NewClassSet(items ...ClassExpression) ClassSet {
	s := make(ClassSet, len(items))
	for _, ce := range items {
		s.Add(ce)
	}
	return s
}

// Add inserts an expression
func (s ClassSet) Add(ce ClassExpression) {
	s[ce.Key()] = ce
}

// AddAll inserts every member of other
func (s ClassSet) AddAll(other ClassSet) {
	for k, ce := range other {
		s[k] = ce
	}
}

// Has reports whether an expression with the same key is a member
func (s ClassSet) Has(ce ClassExpression) bool {
	_, ok := s[ce.Key()]
	return ok
}

// Sorted returns the members ordered by key
func (s ClassSet) Sorted() []ClassExpression {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]ClassExpression, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}
