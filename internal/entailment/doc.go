// Package entailment decides whether a candidate axiom is a logical
// consequence of a knowledge base.
//
// # Components
//
// The classifier maps every domain.AxiomKind to a rule entry. The table is
// verified at package load, so a new kind without an entry stops the program
// from starting. Kinds without entailment semantics (SubClassOf,
// ObjectPropertyAssertion) fail with ErrUnsupportedAxiomKind.
//
// Rules are expressed purely through two collaborators passed to each call:
//
//   - Oracle: instance retrieval, superclass closure and individual types
//   - KnowledgeBase: stated class assertions and equivalence axioms
//
// # Rules
//
//   - Declarations and annotation axioms are always entailed.
//   - EquivalentClasses holds iff all members have the same non-strict
//     extension.
//   - DisjointClasses holds iff no two members share a strict instance. All
//     unordered pairs are compared.
//   - ClassAssertion holds if stated, if the class is a superclass of a
//     stated class of the individual, or if it is declared equivalent to one
//     of the individual's inferred types.
//
// # Re-entrancy
//
// An Oracle may be implemented on top of a Checker. Each Check pushes the
// axiom key onto an immutable chain stored in the context, and refuses with
// ErrCycleDetected when the key is already on the chain or the chain exceeds
// Config.MaxDepth.
package entailment
