package service

import (
	"context"
	"fmt"

	"ontocheck/internal/domain"
	"ontocheck/internal/repository"
)

// ImportResult summarizes an import
type ImportResult struct {
	Source string `json:"source"`
	Merged bool   `json:"merged"`
	Added  int    `json:"added"`
	Total  int    `json:"total"`
}

// ImportDocument writes a document's axioms to store. When merge is false the
// store's previous contents are replaced.
func ImportDocument(ctx context.Context, store repository.AxiomStore, doc *domain.Document, source string, merge bool, eventBus *EventBus) (*ImportResult, error) {
	result := &ImportResult{Source: source, Merged: merge}

	if merge {
		added, err := store.AddAxioms(ctx, doc.Axioms)
		if err != nil {
			return nil, fmt.Errorf("failed to merge axioms: %w", err)
		}
		result.Added = added
	} else if err := store.ReplaceAxioms(ctx, doc.Axioms); err != nil {
		return nil, fmt.Errorf("failed to replace axioms: %w", err)
	}

	total, err := store.CountAxioms(ctx)
	if err != nil {
		return nil, err
	}
	result.Total = total
	if !merge {
		result.Added = total
	}

	eventBus.Publish(Event{Type: EventAxiomsImported, Payload: result})
	return result, nil
}
