package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
	"ontocheck/internal/ontology"
	"ontocheck/internal/reasoner"
	"ontocheck/internal/repository"
)

// Snapshot is the knowledge base and oracle a check runs against. Both must
// stay unchanged for as long as the snapshot is installed.
type Snapshot struct {
	KB     entailment.KnowledgeBase
	Oracle entailment.Oracle
	// Source names where the axioms came from, for logs and events
	Source string
	// Axioms is the number of axioms behind the snapshot
	Axioms int
}

// DocumentSnapshot builds an in-memory snapshot from a decoded document
func DocumentSnapshot(doc *domain.Document, source string, cfg reasoner.Config, logger *zap.Logger) (Snapshot, error) {
	kb, err := ontology.FromDocument(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build ontology: %w", err)
	}
	oracle, err := reasoner.New(cfg, kb.Axioms(), logger)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build reasoner: %w", err)
	}
	return Snapshot{KB: kb, Oracle: oracle, Source: source, Axioms: kb.Len()}, nil
}

// StoreSnapshot builds a snapshot over a persistent store. The store itself
// serves as the knowledge base; the oracle is materialized from its current
// contents.
func StoreSnapshot(ctx context.Context, store repository.AxiomStore, source string, cfg reasoner.Config, logger *zap.Logger) (Snapshot, error) {
	stored, err := store.ListAxioms(ctx, domain.KindUnknown)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list axioms: %w", err)
	}
	axioms := make([]domain.Axiom, len(stored))
	for i, s := range stored {
		axioms[i] = s.Axiom
	}
	oracle, err := reasoner.New(cfg, axioms, logger)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build reasoner: %w", err)
	}
	return Snapshot{KB: store, Oracle: oracle, Source: source, Axioms: len(axioms)}, nil
}
