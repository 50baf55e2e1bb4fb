// Package service coordinates entailment checks for the ontocheck CLI.
//
// # EntailmentService
//
// EntailmentService owns the current Snapshot, a knowledge base paired with
// the oracle materialized from it, and runs candidate axioms through an
// entailment.Checker. Verdicts depend only on the axiom and the snapshot, so
// they are memoized by axiom key. Reload installs a new snapshot and clears
// the memo; a check that was in flight during a reload does not write its
// verdict into the new memo.
//
// Concurrent checks of the same axiom are collapsed with singleflight.
// CheckAll fans candidates out over an errgroup with bounded concurrency.
//
// # Snapshots
//
// DocumentSnapshot builds an in-memory ontology from a decoded document.
// StoreSnapshot uses a persistent repository.AxiomStore as the knowledge
// base.
//
// # Event System
//
// The service publishes axiom_checked and snapshot_reloaded events on an
// EventBus. Publishing never blocks; slow subscribers miss events.
package service
