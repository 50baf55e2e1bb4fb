package repository

import (
	"context"
	"time"

	"ontocheck/internal/domain"
	"ontocheck/internal/entailment"
)

// StoredAxiom is an axiom together with its storage metadata
type StoredAxiom struct {
	ID          string       `json:"id"`
	Fingerprint string       `json:"fingerprint"`
	Axiom       domain.Axiom `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AxiomStore defines the interface for persistent axiom access. Every store
// can serve as an entailment knowledge base.
type AxiomStore interface {
	entailment.KnowledgeBase

	// Read operations
	ListAxioms(ctx context.Context, kind domain.AxiomKind) ([]StoredAxiom, error)
	CountAxioms(ctx context.Context) (int, error)

	// Write operations
	AddAxioms(ctx context.Context, axioms []domain.Axiom) (int, error)
	DeleteAxiom(ctx context.Context, key string) (bool, error)

	// Bulk operations
	ReplaceAxioms(ctx context.Context, axioms []domain.Axiom) error

	// Close releases resources
	Close() error
}
