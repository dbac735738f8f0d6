package fixture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no fixture exists under the requested ID.
var ErrNotFound = errors.New("fixture not found")

const selectColumns = "SELECT id, type_name, plan_id, body, seq FROM fixtures"

// Get returns the fixture stored under id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fixture %s: %w", id, ErrNotFound)
	}
	return rec, err
}

// ListByType returns every fixture rendered for the given declaration, in
// insertion order.
func (s *Store) ListByType(ctx context.Context, typeName string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" WHERE type_name = ? ORDER BY seq", typeName)
	if err != nil {
		return nil, fmt.Errorf("list fixtures for %q: %w", typeName, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// List returns every stored fixture in insertion order.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	if err := row.Scan(&rec.ID, &rec.TypeName, &rec.PlanID, &rec.Body, &rec.Seq); err != nil {
		return nil, err
	}
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fixture row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixture rows: %w", err)
	}
	return out, nil
}
