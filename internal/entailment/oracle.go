package entailment

import (
	"context"

	"ontocheck/internal/domain"
)

// Oracle answers the reasoning queries the rules are expressed in.
// Implementations may call back into a Checker; they must pass on the
// context they were given so the recursion guard can see the chain.
type Oracle interface {
	// Instances returns the extension of ce. strict limits the result to
	// directly asserted instances; otherwise instances inferred through the
	// subclass closure are included.
	Instances(ctx context.Context, ce domain.ClassExpression, strict bool) (domain.IndividualSet, error)
	// Superclasses returns the direct parents of ce when strict, or its full
	// superclass closure otherwise. ce itself is never included.
	Superclasses(ctx context.Context, ce domain.ClassExpression, strict bool) (domain.ClassSet, error)
	// Types returns every class ind is inferred to instantiate, flattened
	Types(ctx context.Context, ind domain.Individual) (domain.ClassSet, error)
}

// KnowledgeBase is the read-only axiom store being checked against
type KnowledgeBase interface {
	// ClassAssertionAxioms returns the class assertions stated for ind
	ClassAssertionAxioms(ctx context.Context, ind domain.Individual) ([]domain.ClassAssertion, error)
	// EquivalentClassesAxioms returns the equivalence axioms that list ce as
	// a member
	EquivalentClassesAxioms(ctx context.Context, ce domain.ClassExpression) ([]domain.EquivalentClasses, error)
}
