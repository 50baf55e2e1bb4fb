package entailment

import (
	"context"

	"ontocheck/internal/domain"
)

// trivial accepts annotation-level and declaration axioms unconditionally
func trivial[A domain.Axiom](context.Context, A, evaluation) (bool, error) {
	return true, nil
}

// equivalentClasses holds iff every member has the same non-strict extension
func equivalentClasses(ctx context.Context, ax domain.EquivalentClasses, ev evaluation) (bool, error) {
	var first domain.IndividualSet
	for i, ce := range ax.Classes() {
		ext, err := ev.oracle.Instances(ctx, ce, false)
		if err != nil {
			return false, oracleFailure("instances", err)
		}
		if i == 0 {
			first = ext
			continue
		}
		if !first.Equal(ext) {
			return false, nil
		}
	}
	return true, nil
}

// disjointClasses holds iff no two members share a strict instance. Every
// unordered pair is compared, not only neighbours in iteration order.
func disjointClasses(ctx context.Context, ax domain.DisjointClasses, ev evaluation) (bool, error) {
	classes := ax.Classes()
	extensions := make([]domain.IndividualSet, 0, len(classes))
	for _, ce := range classes {
		ext, err := ev.oracle.Instances(ctx, ce, true)
		if err != nil {
			return false, oracleFailure("instances", err)
		}
		extensions = append(extensions, ext)
	}

	for i := range extensions {
		for j := i + 1; j < len(extensions); j++ {
			if extensions[i].Intersects(extensions[j]) {
				return false, nil
			}
		}
	}
	return true, nil
}

// classAssertion holds if the assertion is stated verbatim, if the class is a
// superclass of an asserted class of the individual, or if the class is
// declared equivalent to one of the individual's inferred types
func classAssertion(ctx context.Context, ax domain.ClassAssertion, ev evaluation) (bool, error) {
	asserted, err := ev.kb.ClassAssertionAxioms(ctx, ax.Individual)
	if err != nil {
		return false, oracleFailure("class assertion lookup", err)
	}
	for _, a := range asserted {
		if a.Key() == ax.Key() {
			return true, nil
		}
	}

	supers := domain.NewClassSet()
	for _, a := range asserted {
		s, err := ev.oracle.Superclasses(ctx, a.Class, false)
		if err != nil {
			return false, oracleFailure("superclasses", err)
		}
		supers.AddAll(s)
	}
	if supers.Has(ax.Class) {
		return true, nil
	}

	equivalences, err := ev.kb.EquivalentClassesAxioms(ctx, ax.Class)
	if err != nil {
		return false, oracleFailure("equivalent classes lookup", err)
	}
	if len(equivalences) == 0 {
		return false, nil
	}
	group := domain.NewClassSet()
	for _, eq := range equivalences {
		for _, ce := range eq.Classes() {
			group.Add(ce)
		}
	}

	types, err := ev.oracle.Types(ctx, ax.Individual)
	if err != nil {
		return false, oracleFailure("types", err)
	}
	for _, t := range types {
		if group.Has(t) {
			return true, nil
		}
	}
	return false, nil
}
