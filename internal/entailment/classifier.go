package entailment

import (
	"context"
	"fmt"

	"ontocheck/internal/domain"
)

// evaluation bundles the collaborators a rule may query
type evaluation struct {
	kb     KnowledgeBase
	oracle Oracle
}

type rule func(ctx context.Context, ax domain.Axiom, ev evaluation) (bool, error)

// ruleEntry is the dispatch target for one axiom kind. A nil eval marks a
// kind that can be stored but has no entailment semantics.
type ruleEntry struct {
	name string
	eval rule
}

// rules must carry an entry for every domain.AxiomKind; init panics otherwise
var rules = map[domain.AxiomKind]ruleEntry{
	domain.KindDeclaration:              {"trivial", typed(trivial[domain.Declaration])},
	domain.KindAnnotationAssertion:      {"trivial", typed(trivial[domain.AnnotationAssertion])},
	domain.KindSubAnnotationPropertyOf:  {"trivial", typed(trivial[domain.SubAnnotationPropertyOf])},
	domain.KindAnnotationPropertyDomain: {"trivial", typed(trivial[domain.AnnotationPropertyDomain])},
	domain.KindAnnotationPropertyRange:  {"trivial", typed(trivial[domain.AnnotationPropertyRange])},
	domain.KindEquivalentClasses:        {"equal-extensions", typed(equivalentClasses)},
	domain.KindDisjointClasses:          {"pairwise-disjoint", typed(disjointClasses)},
	domain.KindClassAssertion:           {"class-membership", typed(classAssertion)},
	domain.KindSubClassOf:               {name: "unsupported"},
	domain.KindObjectPropertyAssertion:  {name: "unsupported"},
}

func init() {
	for _, k := range domain.Kinds() {
		if _, ok := rules[k]; !ok {
			panic(fmt.Sprintf("entailment: no rule entry for axiom kind %s", k))
		}
	}
}

// classify selects the rule for ax
func classify(ax domain.Axiom) (ruleEntry, error) {
	entry, ok := rules[ax.Kind()]
	if !ok || entry.eval == nil {
		return ruleEntry{}, fmt.Errorf("%w: %s", ErrUnsupportedAxiomKind, ax.Kind())
	}
	return entry, nil
}

// Supported reports whether kind has an entailment rule
func Supported(kind domain.AxiomKind) bool {
	entry, ok := rules[kind]
	return ok && entry.eval != nil
}

// typed adapts a rule over a concrete axiom type to the dispatch signature
func typed[A domain.Axiom](fn func(context.Context, A, evaluation) (bool, error)) rule {
	return func(ctx context.Context, ax domain.Axiom, ev evaluation) (bool, error) {
		a, ok := ax.(A)
		if !ok {
			var want A
			return false, fmt.Errorf("rule for %T received %T", want, ax)
		}
		return fn(ctx, a, ev)
	}
}
