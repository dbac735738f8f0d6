package fixture

import (
	"context"
	"fmt"

	"github.com/roach88/previewkit/internal/shape"
)

// Record is one stored fixture row.
type Record struct {
	ID       string `json:"id"`
	TypeName string `json:"type_name"`
	PlanID   string `json:"plan_id"`
	Body     string `json:"body"`
	Seq      int64  `json:"seq"`
}

// Save stores a rendered value under its content-addressed ID and returns
// the stored record.
//
// Writes are idempotent: saving an identical value for the same type is a
// no-op, and the originally stored record is returned. The seq column
// assigns insertion order for deterministic listing.
func (s *Store) Save(ctx context.Context, typeName, planID string, v shape.Value) (*Record, error) {
	id, err := shape.FixtureID(typeName, v)
	if err != nil {
		return nil, fmt.Errorf("compute fixture ID: %w", err)
	}
	body, err := shape.MarshalCanonical(v)
	if err != nil {
		return nil, fmt.Errorf("marshal fixture body: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM fixtures").Scan(&seq); err != nil {
		return nil, fmt.Errorf("assign seq: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO fixtures (id, type_name, plan_id, body, seq) VALUES (?, ?, ?, ?, ?)",
		id, typeName, planID, string(body), seq)
	if err != nil {
		return nil, fmt.Errorf("insert fixture: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	// Read back what is actually stored - on a duplicate write the original
	// row (and its seq) wins.
	return s.Get(ctx, id)
}
