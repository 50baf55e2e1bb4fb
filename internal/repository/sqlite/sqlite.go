package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ontocheck/internal/domain"
	"ontocheck/internal/repository"
)

// Repository implements repository.AxiomStore using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.AxiomStore = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if dbPath != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS axioms (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		key TEXT NOT NULL UNIQUE,
		fingerprint TEXT NOT NULL,
		payload JSON NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS class_assertions (
		axiom_id TEXT NOT NULL,
		individual TEXT NOT NULL,
		class_key TEXT NOT NULL,
		PRIMARY KEY (axiom_id),
		FOREIGN KEY (axiom_id) REFERENCES axioms(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS equivalence_members (
		axiom_id TEXT NOT NULL,
		class_key TEXT NOT NULL,
		PRIMARY KEY (axiom_id, class_key),
		FOREIGN KEY (axiom_id) REFERENCES axioms(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_axioms_kind ON axioms(kind);
	CREATE INDEX IF NOT EXISTS idx_class_assertions_individual ON class_assertions(individual);
	CREATE INDEX IF NOT EXISTS idx_equivalence_members_class ON equivalence_members(class_key);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ============================================================================
// Read Operations
// ============================================================================

// ListAxioms returns stored axioms in insertion order. KindUnknown lists
// every kind.
func (r *Repository) ListAxioms(ctx context.Context, kind domain.AxiomKind) ([]repository.StoredAxiom, error) {
	query := `SELECT ` + axiomColumns + ` FROM axioms a`
	var args []interface{}
	if kind != domain.KindUnknown {
		query += ` WHERE a.kind = ?`
		args = append(args, kind.String())
	}
	query += ` ORDER BY a.rowid`

	return r.queryAxioms(ctx, query, args...)
}

// CountAxioms returns the number of stored axioms
func (r *Repository) CountAxioms(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM axioms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count axioms: %w", err)
	}
	return n, nil
}

// ClassAssertionAxioms returns the stored class assertions about ind
func (r *Repository) ClassAssertionAxioms(ctx context.Context, ind domain.Individual) ([]domain.ClassAssertion, error) {
	stored, err := r.queryAxioms(ctx, `
		SELECT `+axiomColumns+`
		FROM axioms a JOIN class_assertions c ON c.axiom_id = a.id
		WHERE c.individual = ?
		ORDER BY a.rowid
	`, string(ind))
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClassAssertion, 0, len(stored))
	for _, s := range stored {
		ca, ok := s.Axiom.(domain.ClassAssertion)
		if !ok {
			return nil, fmt.Errorf("axiom %s indexed as class assertion is %s", s.ID, s.Axiom.Kind())
		}
		out = append(out, ca)
	}
	return out, nil
}

// EquivalentClassesAxioms returns the stored equivalences mentioning ce
func (r *Repository) EquivalentClassesAxioms(ctx context.Context, ce domain.ClassExpression) ([]domain.EquivalentClasses, error) {
	if ce == nil {
		return nil, fmt.Errorf("nil class expression")
	}
	stored, err := r.queryAxioms(ctx, `
		SELECT `+axiomColumns+`
		FROM axioms a JOIN equivalence_members m ON m.axiom_id = a.id
		WHERE m.class_key = ?
		ORDER BY a.rowid
	`, ce.Key())
	if err != nil {
		return nil, err
	}

	out := make([]domain.EquivalentClasses, 0, len(stored))
	for _, s := range stored {
		eq, ok := s.Axiom.(domain.EquivalentClasses)
		if !ok {
			return nil, fmt.Errorf("axiom %s indexed as equivalence is %s", s.ID, s.Axiom.Kind())
		}
		out = append(out, eq)
	}
	return out, nil
}

func (r *Repository) queryAxioms(ctx context.Context, query string, args ...interface{}) ([]repository.StoredAxiom, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query axioms: %w", err)
	}
	defer rows.Close()

	var out []repository.StoredAxiom
	for rows.Next() {
		var row axiomRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan axiom: %w", err)
		}
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating axioms: %w", err)
	}
	return out, nil
}

// ============================================================================
// Write Operations
// ============================================================================

// AddAxioms stores axioms not already present and returns how many were
// added. Axioms are validated before anything is written.
func (r *Repository) AddAxioms(ctx context.Context, axioms []domain.Axiom) (int, error) {
	if err := validateAll(axioms); err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	added, err := insertAxioms(ctx, tx, axioms)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return added, nil
}

// DeleteAxiom removes the axiom with the given key. It reports whether a row
// was removed.
func (r *Repository) DeleteAxiom(ctx context.Context, key string) (bool, error) {
	// Index rows will be deleted by CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM axioms WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete axiom: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete axiom: %w", err)
	}
	return n > 0, nil
}

// ReplaceAxioms replaces all stored axioms with the provided ones
func (r *Repository) ReplaceAxioms(ctx context.Context, axioms []domain.Axiom) error {
	if err := validateAll(axioms); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear existing data (order matters due to foreign keys)
	for _, table := range []string{"class_assertions", "equivalence_members", "axioms"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if _, err := insertAxioms(ctx, tx, axioms); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func validateAll(axioms []domain.Axiom) error {
	for i, a := range axioms {
		if err := domain.Validate(a); err != nil {
			return fmt.Errorf("axiom %d: %w", i, err)
		}
	}
	return nil
}

func insertAxioms(ctx context.Context, tx *sql.Tx, axioms []domain.Axiom) (int, error) {
	axiomStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO axioms (id, kind, key, fingerprint, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare axiom statement: %w", err)
	}
	defer axiomStmt.Close()

	assertionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO class_assertions (axiom_id, individual, class_key) VALUES (?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare class assertion statement: %w", err)
	}
	defer assertionStmt.Close()

	memberStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO equivalence_members (axiom_id, class_key) VALUES (?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare equivalence statement: %w", err)
	}
	defer memberStmt.Close()

	now := time.Now().UTC()
	added := 0
	for _, a := range axioms {
		payload, err := marshalPayload(a)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal axiom %s: %w", a.Key(), err)
		}

		id := uuid.New().String()
		res, err := axiomStmt.ExecContext(ctx, id, a.Kind().String(), a.Key(), domain.Fingerprint(a), string(payload), now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert axiom %s: %w", a.Key(), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to insert axiom %s: %w", a.Key(), err)
		}
		if n == 0 {
			continue
		}
		added++

		switch v := a.(type) {
		case domain.ClassAssertion:
			if _, err := assertionStmt.ExecContext(ctx, id, string(v.Individual), v.Class.Key()); err != nil {
				return 0, fmt.Errorf("failed to index class assertion %s: %w", a.Key(), err)
			}
		case domain.EquivalentClasses:
			for _, ce := range v.Classes() {
				if _, err := memberStmt.ExecContext(ctx, id, ce.Key()); err != nil {
					return 0, fmt.Errorf("failed to index equivalence %s: %w", a.Key(), err)
				}
			}
		}
	}

	return added, nil
}
