// Package repository defines the data access interfaces for ontocheck.
//
// This package provides the storage abstraction for axioms. The actual
// implementation is in the sqlite subpackage.
//
// # AxiomStore Interface
//
// AxiomStore persists axioms keyed by their canonical functional-syntax
// key, so adding the same axiom twice is a no-op. It embeds
// entailment.KnowledgeBase: the class assertion and equivalence lookups the
// checker needs are answered from indexed side tables rather than by
// decoding every stored axiom.
//
// # SQLite Implementation
//
// The sqlite implementation stores each axiom as a JSON payload in the
// codec wire format, alongside its kind, key and fingerprint. It handles:
//
// - Idempotent inserts by axiom key
// - Transactional bulk replacement for imports
// - Cascade deletes of index rows
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
