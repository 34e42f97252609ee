// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/ports/secondary"
)

// BoardRepository implements secondary.BoardRepository with SQLite.
type BoardRepository struct {
	db *sql.DB
}

// NewBoardRepository creates a new SQLite board repository.
func NewBoardRepository(db *sql.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Save inserts or replaces a board snapshot in a single statement.
// created_at is kept from the first save.
func (r *BoardRepository) Save(ctx context.Context, record *secondary.BoardRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (id, title, snapshot, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at`,
		record.ID, record.Title, string(record.Snapshot), formatTime(record.CreatedAt), formatTime(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// GetByID retrieves a board snapshot by its ID.
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, snapshot, created_at, updated_at FROM boards WHERE id = ?",
		id,
	)
	record, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return record, nil
}

// List retrieves every board snapshot, most recently updated first.
func (r *BoardRepository) List(ctx context.Context) ([]*secondary.BoardRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, snapshot, created_at, updated_at FROM boards ORDER BY updated_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var records []*secondary.BoardRecord
	for rows.Next() {
		record, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return records, nil
}

// Delete removes a board snapshot.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to verify delete: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (*secondary.BoardRecord, error) {
	var (
		record    secondary.BoardRecord
		snapshot  string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&record.ID, &record.Title, &snapshot, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	record.Snapshot = []byte(snapshot)
	return &record, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
