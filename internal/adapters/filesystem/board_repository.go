// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/ports/secondary"
)

const (
	boardFileExt = ".json"
	filePerms    = 0o644
)

// BoardRepository implements secondary.BoardRepository with one JSON snapshot
// file per board. Writes go through a temp file and rename, so a reader never
// sees a partially written board.
type BoardRepository struct {
	dir string
}

// NewBoardRepository creates a board repository rooted at dir, creating the
// directory if needed.
func NewBoardRepository(dir string) (*BoardRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create boards directory: %w", err)
	}
	return &BoardRepository{dir: dir}, nil
}

// snapshotHeader is the part of a snapshot needed to build a record.
type snapshotHeader struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Save writes the board snapshot atomically.
func (r *BoardRepository) Save(ctx context.Context, record *secondary.BoardRecord) error {
	path, err := r.path(record.ID)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(record.Snapshot)); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}
	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}

// GetByID reads a board snapshot by its ID.
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	return readBoardFile(path, id)
}

// List reads every board snapshot in the directory, ordered by file name.
func (r *BoardRepository) List(ctx context.Context) ([]*secondary.BoardRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	var records []*secondary.BoardRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != boardFileExt {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := strings.TrimSuffix(e.Name(), boardFileExt)
		record, err := readBoardFile(filepath.Join(r.dir, e.Name()), id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// Delete removes a board snapshot file.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	path, err := r.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
		}
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

func (r *BoardRepository) path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid board id %q", id)
	}
	return filepath.Join(r.dir, id+boardFileExt), nil
}

func readBoardFile(path, id string) (*secondary.BoardRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
		}
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	// A damaged file is still returned; decoding the snapshot reports it.
	var header snapshotHeader
	_ = json.Unmarshal(data, &header)
	if header.ID == "" {
		header.ID = id
	}
	return &secondary.BoardRecord{
		ID:        header.ID,
		Title:     header.Title,
		Snapshot:  data,
		CreatedAt: header.CreatedAt,
		UpdatedAt: header.UpdatedAt,
	}, nil
}
