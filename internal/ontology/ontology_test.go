package ontology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
)

var _ entailment.KnowledgeBase = (*Ontology)(nil)

func TestOntologyIndexes(t *testing.T) {
	eq, err := domain.NewEquivalentClasses(domain.NewClass("Person"), domain.NewClass("Human"))
	require.NoError(t, err)

	o, err := New("http://example.org/people",
		domain.ClassAssertion{Individual: "alice", Class: domain.NewClass("Person")},
		domain.ClassAssertion{Individual: "alice", Class: domain.NewClass("Student")},
		domain.ClassAssertion{Individual: "alice", Class: domain.NewClass("Person")},
		domain.ClassAssertion{Individual: "bob", Class: domain.NewClass("Person")},
		eq,
	)
	require.NoError(t, err)
	assert.Equal(t, 4, o.Len())
	assert.Equal(t, domain.IRI("http://example.org/people"), o.IRI())

	ctx := context.Background()
	alice, err := o.ClassAssertionAxioms(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice, 2)

	none, err := o.ClassAssertionAxioms(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)

	human, err := o.EquivalentClassesAxioms(ctx, domain.NewClass("Human"))
	require.NoError(t, err)
	require.Len(t, human, 1)
	assert.Equal(t, eq.Key(), human[0].Key())

	student, err := o.EquivalentClassesAxioms(ctx, domain.NewClass("Student"))
	require.NoError(t, err)
	assert.Empty(t, student)

	assert.True(t, o.Contains(domain.ClassAssertion{Individual: "bob", Class: domain.NewClass("Person")}))
}

func TestOntologyRejectsInvalidAxiom(t *testing.T) {
	_, err := New("", domain.ClassAssertion{Individual: "alice"})
	assert.Error(t, err)
}

func TestOntologyLookupsReturnCopies(t *testing.T) {
	o, err := New("", domain.ClassAssertion{Individual: "alice", Class: domain.NewClass("Person")})
	require.NoError(t, err)

	got, err := o.ClassAssertionAxioms(context.Background(), "alice")
	require.NoError(t, err)
	got[0] = domain.ClassAssertion{Individual: "alice", Class: domain.NewClass("Robot")}

	again, err := o.ClassAssertionAxioms(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Person", again[0].Class.Key())
}
