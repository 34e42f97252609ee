package primary

import (
	"context"
	"errors"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/link"
)

// ErrNoAnnotations is returned when pasted text holds no quoted annotation.
var ErrNoAnnotations = errors.New("no quoted annotation found in text")

// ImportService defines the primary port for importing annotations from
// paper notes into a board's Inbox.
type ImportService interface {
	// ImportFromPapers extracts annotations from each paper's notes and adds
	// the ones not already on the board. A paper that fails does not stop
	// the batch.
	ImportFromPapers(ctx context.Context, boardID string, papers []SourcePaper) (*ImportResult, error)

	// ImportFromCatalog imports the given papers from the paper catalog.
	// An empty list imports every paper in the catalog.
	ImportFromCatalog(ctx context.Context, boardID string, paperIDs []string) (*ImportResult, error)

	// ScanCatalog reports which catalog papers carry annotations.
	ScanCatalog(ctx context.Context) ([]*PaperScan, error)

	// Preview runs extraction without touching any board.
	Preview(ctx context.Context, text string, paper *SourcePaper) ([]board.Annotation, error)

	// AddFromText extracts annotations from pasted text and appends one card
	// per annotation to the column. Unlike an import it does not skip
	// duplicates; it fails with ErrNoAnnotations when the text has no quote.
	AddFromText(ctx context.Context, boardID, columnID, text string) ([]*board.Card, error)

	// Links lists every deep link in text, classified.
	Links(ctx context.Context, text string) ([]link.LabeledLink, error)
}

// SourcePaper is one paper whose notes are imported.
type SourcePaper struct {
	ID          string
	Title       string
	Authors     string
	Year        string
	ExternalKey string
	Notes       string
	NotesHTML   string // preferred over Notes when non-empty
}

// NoteText returns the text annotations are extracted from.
func (p SourcePaper) NoteText() string {
	if p.NotesHTML != "" {
		return p.NotesHTML
	}
	return p.Notes
}

// ImportResult summarizes one import run.
type ImportResult struct {
	BoardID  string
	Papers   int
	Inserted int
	Skipped  int
	Failures []ImportFailure
}

// ImportFailure records a paper that contributed nothing because of an error.
type ImportFailure struct {
	PaperID string
	Reason  string
}

// PaperScan is the annotation summary of one catalog paper.
type PaperScan struct {
	PaperID        string
	Title          string
	HasAnnotations bool
	Count          int
}
