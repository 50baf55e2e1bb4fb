package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"ontocheck/internal/codec"
	"ontocheck/internal/domain"
	"ontocheck/internal/repository"
)

// ============================================================================
// Payload Helpers
// ============================================================================

// marshalPayload encodes an axiom in the codec wire format
func marshalPayload(a domain.Axiom) ([]byte, error) {
	entry, err := codec.EncodeAxiom(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entry)
}

// unmarshalPayload decodes and validates a stored axiom
func unmarshalPayload(data []byte) (domain.Axiom, error) {
	var entry codec.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return codec.DecodeAxiom(entry)
}

// ============================================================================
// Axiom Row Scanner
// ============================================================================
//
// CRITICAL: Column order must match between:
// - axiomColumns constant
// - scanArgs() return slice

// axiomRow holds all columns from an axiom query for scanning
type axiomRow struct {
	ID          string
	Kind        string
	Key         string
	Fingerprint string
	Payload     []byte
	CreatedAt   time.Time
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match axiomColumns order exactly:
// id, kind, key, fingerprint, payload, created_at
func (r *axiomRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,          // 1
		&r.Kind,        // 2
		&r.Key,         // 3
		&r.Fingerprint, // 4
		&r.Payload,     // 5
		&r.CreatedAt,   // 6
	}
}

// toDomain converts the scanned row to a repository.StoredAxiom
func (r *axiomRow) toDomain() (repository.StoredAxiom, error) {
	a, err := unmarshalPayload(r.Payload)
	if err != nil {
		return repository.StoredAxiom{}, fmt.Errorf("unmarshal axiom %s: %w", r.ID, err)
	}
	if a.Kind().String() != r.Kind {
		return repository.StoredAxiom{}, fmt.Errorf("axiom %s: stored kind %s does not match payload kind %s", r.ID, r.Kind, a.Kind())
	}
	return repository.StoredAxiom{
		ID:          r.ID,
		Fingerprint: r.Fingerprint,
		Axiom:       a,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// axiomColumns returns the SELECT column list for axiom queries
const axiomColumns = `a.id, a.kind, a.key, a.fingerprint, a.payload, a.created_at`
