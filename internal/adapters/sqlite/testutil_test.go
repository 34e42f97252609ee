// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/db"
	"github.com/example/annoboard/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// newSnapshotRecord builds a board with one card and returns it with its record.
func newSnapshotRecord(t *testing.T, id, title string, at time.Time) (*board.Board, *secondary.BoardRecord) {
	t.Helper()
	b := board.New(id, title, at)
	b.AddColumn("col_ideas", "Ideas", at)
	_, err := b.AddCard("col_ideas", "ann_1", board.Annotation{
		Quote: "attention is all you need",
		Source: board.Source{
			Text:        "Vaswani, 2017",
			ExternalKey: board.String("V17"),
			ExternalURL: board.String("zotero://select/items/V17"),
		},
		PDF:     &board.PDFRef{URL: "zotero://open-pdf/items/V17?page=2", Page: board.Int(2)},
		PaperID: board.String("p1"),
	}, at)
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}

	data, err := board.MarshalSnapshot(b)
	if err != nil {
		t.Fatalf("MarshalSnapshot failed: %v", err)
	}
	return b, &secondary.BoardRecord{
		ID:        b.ID,
		Title:     b.Title,
		Snapshot:  data,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// seedBoard saves a board through the repository under test.
func seedBoard(t *testing.T, repo secondary.BoardRepository, id, title string, at time.Time) *board.Board {
	t.Helper()
	b, record := newSnapshotRecord(t, id, title, at)
	if err := repo.Save(context.Background(), record); err != nil {
		t.Fatalf("failed to seed board: %v", err)
	}
	return b
}
