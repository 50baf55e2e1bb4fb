package reasoner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
	"ontocheck/internal/ontology"
	"ontocheck/internal/reasoner"
)

var _ entailment.Oracle = (*reasoner.Reasoner)(nil)

func named(iri string) domain.Class {
	return domain.NewClass(domain.IRI(iri))
}

func mustEquivalent(t *testing.T, ces ...domain.ClassExpression) domain.EquivalentClasses {
	t.Helper()
	eq, err := domain.NewEquivalentClasses(ces...)
	require.NoError(t, err)
	return eq
}

func mustDisjoint(t *testing.T, ces ...domain.ClassExpression) domain.DisjointClasses {
	t.Helper()
	dj, err := domain.NewDisjointClasses(ces...)
	require.NoError(t, err)
	return dj
}

func TestCheckAgainstMaterializedOntology(t *testing.T) {
	axioms := []domain.Axiom{
		domain.SubClassOf{Sub: named("Student"), Super: named("Person")},
		domain.SubClassOf{Sub: named("Person"), Super: named("Agent")},
		mustEquivalent(t, named("Person"), named("Human")),
		domain.ClassAssertion{Individual: "alice", Class: named("Student")},
		domain.ClassAssertion{Individual: "rex", Class: named("Dog")},
		domain.ClassAssertion{Individual: "tom", Class: named("Cat")},
	}
	kb, err := ontology.New("http://example.org/people", axioms...)
	require.NoError(t, err)
	oracle, err := reasoner.New(reasoner.DefaultConfig(), kb.Axioms(), nil)
	require.NoError(t, err)
	checker := entailment.NewChecker(entailment.DefaultConfig(), nil)

	tests := []struct {
		name     string
		axiom    domain.Axiom
		entailed bool
	}{
		{
			name:     "stated assertion",
			axiom:    domain.ClassAssertion{Individual: "alice", Class: named("Student")},
			entailed: true,
		},
		{
			name:     "assertion through superclass chain",
			axiom:    domain.ClassAssertion{Individual: "alice", Class: named("Agent")},
			entailed: true,
		},
		{
			name:     "assertion through equivalence",
			axiom:    domain.ClassAssertion{Individual: "alice", Class: named("Human")},
			entailed: true,
		},
		{
			name:     "unrelated class",
			axiom:    domain.ClassAssertion{Individual: "rex", Class: named("Person")},
			entailed: false,
		},
		{
			name:     "equivalent extensions",
			axiom:    mustEquivalent(t, named("Person"), named("Human")),
			entailed: true,
		},
		{
			name:     "equal inferred extensions",
			axiom:    mustEquivalent(t, named("Student"), named("Agent")),
			entailed: true,
		},
		{
			name:     "different extensions",
			axiom:    mustEquivalent(t, named("Dog"), named("Cat")),
			entailed: false,
		},
		{
			name:     "disjoint stated instances",
			axiom:    mustDisjoint(t, named("Dog"), named("Cat"), named("Student")),
			entailed: true,
		},
		{
			name:     "declaration",
			axiom:    domain.Declaration{Entity: domain.EntityClass, IRI: "Robot"},
			entailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.Check(context.Background(), tt.axiom, kb, oracle)
			require.NoError(t, err)
			assert.Equal(t, tt.entailed, got)
		})
	}
}

func TestCheckDisjointSharedInstance(t *testing.T) {
	kb, err := ontology.New("http://example.org/pets",
		domain.ClassAssertion{Individual: "x", Class: named("A")},
		domain.ClassAssertion{Individual: "y", Class: named("B")},
		domain.ClassAssertion{Individual: "x", Class: named("C")},
	)
	require.NoError(t, err)
	oracle, err := reasoner.New(reasoner.DefaultConfig(), kb.Axioms(), nil)
	require.NoError(t, err)

	got, err := entailment.NewChecker(entailment.DefaultConfig(), nil).
		Check(context.Background(), mustDisjoint(t, named("A"), named("B"), named("C")), kb, oracle)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCheckUnsupportedKind(t *testing.T) {
	kb, err := ontology.New("http://example.org/empty")
	require.NoError(t, err)
	oracle, err := reasoner.New(reasoner.DefaultConfig(), nil, nil)
	require.NoError(t, err)

	_, err = entailment.NewChecker(entailment.DefaultConfig(), nil).Check(context.Background(),
		domain.SubClassOf{Sub: named("A"), Super: named("B")}, kb, oracle)
	assert.ErrorIs(t, err, entailment.ErrUnsupportedAxiomKind)
}
