package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxiomKindNames(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			assert.True(t, k.Valid())
			parsed, err := ParseAxiomKind(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, parsed)
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseAxiomKind("ObjectPropertyDomain")
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.False(t, KindUnknown.Valid())
		assert.False(t, kindCount.Valid())
		assert.Equal(t, "AxiomKind(99)", AxiomKind(99).String())
	})
}

func TestEquivalentClassesCanonicalKey(t *testing.T) {
	a, err := NewEquivalentClasses(NewClass("B"), NewClass("A"))
	require.NoError(t, err)
	b, err := NewEquivalentClasses(NewClass("A"), NewClass("B"), NewClass("A"))
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "EquivalentClasses(A B)", a.Key())
	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.True(t, a.Mentions(NewClass("A")))
	assert.False(t, a.Mentions(NewClass("C")))
}

func TestNaryAxiomsRequireTwoMembers(t *testing.T) {
	_, err := NewEquivalentClasses(NewClass("A"))
	assert.Error(t, err)

	_, err = NewDisjointClasses(NewClass("A"), NewClass("A"))
	assert.Error(t, err)

	_, err = NewDisjointClasses(NewClass("A"), nil)
	assert.Error(t, err)
}

func TestClassesReturnsCopy(t *testing.T) {
	ax, err := NewDisjointClasses(NewClass("A"), NewClass("B"))
	require.NoError(t, err)

	cs := ax.Classes()
	cs[0] = NewClass("Z")
	assert.Equal(t, "DisjointClasses(A B)", ax.Key())
}

func TestValidate(t *testing.T) {
	eq, err := NewEquivalentClasses(NewClass("A"), NewClass("B"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		axiom   Axiom
		wantErr bool
	}{
		{"declaration", Declaration{Entity: EntityClass, IRI: "A"}, false},
		{"declaration without iri", Declaration{Entity: EntityClass}, true},
		{"class assertion", ClassAssertion{Individual: "alice", Class: NewClass("A")}, false},
		{"class assertion without class", ClassAssertion{Individual: "alice"}, true},
		{"class assertion without individual", ClassAssertion{Class: NewClass("A")}, true},
		{"subclass", SubClassOf{Sub: NewClass("A"), Super: NewClass("B")}, false},
		{"subclass without super", SubClassOf{Sub: NewClass("A")}, true},
		{"equivalent", eq, false},
		{"zero equivalent", EquivalentClasses{}, true},
		{"annotation", AnnotationAssertion{Property: "rdfs:label", Subject: "A", Value: "a"}, false},
		{"property assertion", ObjectPropertyAssertion{Property: "knows", Subject: "a"}, true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.axiom)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
