// Package secondary defines the secondary ports (driven adapters) for the application.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrPaperNotFound is returned by a PaperCatalog for unknown paper IDs.
var ErrPaperNotFound = errors.New("paper not found")

// BoardRepository defines the secondary port for board persistence.
// A board is stored as one snapshot document; Save replaces it whole.
type BoardRepository interface {
	// Save inserts or replaces a board snapshot.
	Save(ctx context.Context, record *BoardRecord) error

	// GetByID retrieves a board snapshot. Unknown IDs return an error
	// wrapping board.ErrBoardNotFound.
	GetByID(ctx context.Context, id string) (*BoardRecord, error)

	// List retrieves every board snapshot.
	List(ctx context.Context) ([]*BoardRecord, error)

	// Delete removes a board snapshot. Unknown IDs return an error
	// wrapping board.ErrBoardNotFound.
	Delete(ctx context.Context, id string) error
}

// BoardRecord represents a persisted board snapshot.
type BoardRecord struct {
	ID        string
	Title     string
	Snapshot  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaperCatalog defines the secondary port for reading papers and their notes.
type PaperCatalog interface {
	// ListPapers retrieves every paper in the catalog.
	ListPapers(ctx context.Context) ([]*PaperRecord, error)

	// GetPaper retrieves a paper by ID, or ErrPaperNotFound.
	GetPaper(ctx context.Context, id string) (*PaperRecord, error)
}

// PaperRecord represents a paper as stored in the catalog.
type PaperRecord struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Authors   string `json:"authors" yaml:"authors"`
	Year      string `json:"year" yaml:"year"`
	ZoteroKey string `json:"zotero_key" yaml:"zotero_key"`
	Notes     string `json:"notes" yaml:"notes"`
	NotesHTML string `json:"notes_html" yaml:"notes_html"`
}
