// Package ontology provides an in-memory knowledge base snapshot.
package ontology

import (
	"context"
	"fmt"

	"ontocheck/internal/domain"
)

// Ontology is an immutable, indexed set of axioms. It implements
// entailment.KnowledgeBase.
type Ontology struct {
	iri        domain.IRI
	axioms     []domain.Axiom
	keys       map[string]bool
	assertions map[domain.Individual][]domain.ClassAssertion
	// equivalences is keyed by member class expression key
	equivalences map[string][]domain.EquivalentClasses
}

// New builds an ontology from axioms. Structural duplicates are dropped;
// invalid axioms are rejected.
func New(iri domain.IRI, axioms ...domain.Axiom) (*Ontology, error) {
	o := &Ontology{
		iri:          iri,
		axioms:       make([]domain.Axiom, 0, len(axioms)),
		keys:         make(map[string]bool, len(axioms)),
		assertions:   make(map[domain.Individual][]domain.ClassAssertion),
		equivalences: make(map[string][]domain.EquivalentClasses),
	}

	for i, a := range axioms {
		if err := domain.Validate(a); err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i, err)
		}
		key := a.Key()
		if o.keys[key] {
			continue
		}
		o.keys[key] = true
		o.axioms = append(o.axioms, a)

		switch v := a.(type) {
		case domain.ClassAssertion:
			o.assertions[v.Individual] = append(o.assertions[v.Individual], v)
		case domain.EquivalentClasses:
			for _, ce := range v.Classes() {
				o.equivalences[ce.Key()] = append(o.equivalences[ce.Key()], v)
			}
		}
	}

	return o, nil
}

// FromDocument builds an ontology from a decoded document
func FromDocument(doc *domain.Document) (*Ontology, error) {
	return New(doc.IRI, doc.Axioms...)
}

// IRI returns the ontology IRI, if any
func (o *Ontology) IRI() domain.IRI {
	return o.iri
}

// Axioms returns a copy of the axioms in insertion order
func (o *Ontology) Axioms() []domain.Axiom {
	return append([]domain.Axiom(nil), o.axioms...)
}

// Len returns the number of distinct axioms
func (o *Ontology) Len() int {
	return len(o.axioms)
}

// Contains reports whether a structurally equal axiom is present
func (o *Ontology) Contains(a domain.Axiom) bool {
	return o.keys[a.Key()]
}

// ClassAssertionAxioms returns the class assertions stated for ind
func (o *Ontology) ClassAssertionAxioms(_ context.Context, ind domain.Individual) ([]domain.ClassAssertion, error) {
	return append([]domain.ClassAssertion(nil), o.assertions[ind]...), nil
}

// EquivalentClassesAxioms returns the equivalence axioms listing ce
func (o *Ontology) EquivalentClassesAxioms(_ context.Context, ce domain.ClassExpression) ([]domain.EquivalentClasses, error) {
	return append([]domain.EquivalentClasses(nil), o.equivalences[ce.Key()]...), nil
}
