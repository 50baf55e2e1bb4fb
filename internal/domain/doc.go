// Package domain defines the ontology types shared by every ontocheck package.
//
// # Axioms
//
// Axiom is a closed tagged variant: one immutable struct per AxiomKind
// (Declaration, AnnotationAssertion, SubAnnotationPropertyOf,
// AnnotationPropertyDomain, AnnotationPropertyRange, EquivalentClasses,
// DisjointClasses, ClassAssertion, SubClassOf, ObjectPropertyAssertion).
// Each axiom has a canonical Key used for identity, storage and memoization.
//
// N-ary axioms (EquivalentClasses, DisjointClasses) are built through
// constructors that collapse duplicate members and require at least two
// distinct class expressions.
//
// # Class Expressions
//
// ClassExpression is a named Class or an ObjectIntersectionOf /
// ObjectUnionOf over other expressions. Only extension semantics matter to
// the entailment checker, so expressions are compared through their keys.
//
// # Sets
//
// IndividualSet and ClassSet provide the set algebra the entailment rules
// and the reasoner work in.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
package domain
