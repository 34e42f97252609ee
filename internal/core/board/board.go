// Package board contains the pure board model: boards, columns and cards,
// the mutations over them, and the invariants every mutation must preserve.
// This is part of the Functional Core - no I/O, ids and clocks are passed in.
package board

import (
	"errors"
	"time"
)

// Inbox column constants. The Inbox always exists at index 0.
const (
	InboxColumnID = "col_inbox"
	InboxTitle    = "Inbox"
)

// Default titles used when callers leave a title empty.
const (
	DefaultBoardTitle  = "New Board"
	DefaultColumnTitle = "New Column"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalid       = errors.New("invalid")
	ErrInvariant     = errors.New("board invariant violated")
)

// Source identifies where a quote came from.
type Source struct {
	Text        string  `json:"text"`
	ExternalKey *string `json:"externalKey,omitempty"`
	ExternalURL *string `json:"externalUrl,omitempty"`
}

// PDFRef points into a PDF, optionally at a page and a point annotation.
type PDFRef struct {
	URL          string  `json:"url"`
	Page         *int    `json:"page,omitempty"`
	AnnotationID *string `json:"annotationId,omitempty"`
}

// Annotation is an extracted record that has not been placed on a board yet.
type Annotation struct {
	Quote      string    `json:"quote"`
	Source     Source    `json:"source"`
	PDF        *PDFRef   `json:"pdf,omitempty"`
	MyNote     string    `json:"myNote"`
	PaperID    *string   `json:"paperId,omitempty"`
	PaperTitle *string   `json:"paperTitle,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Card is an annotation placed in exactly one column.
type Card struct {
	ID string `json:"id"`
	Annotation
}

// Column is a named, ordered list of card ids.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	CardIDs []string `json:"cardIds"`
}

// Board owns its columns and cards.
type Board struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Columns   []*Column        `json:"columns"`
	Cards     map[string]*Card `json:"cards"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Summary is the lightweight listing view of a board.
type Summary struct {
	ID        string
	Title     string
	Columns   int
	Cards     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summarize builds the listing view of b.
func Summarize(b *Board) Summary {
	return Summary{
		ID:        b.ID,
		Title:     b.Title,
		Columns:   len(b.Columns),
		Cards:     len(b.Cards),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// Column returns the column with the given id and its index, or nil and -1.
func (b *Board) Column(columnID string) (*Column, int) {
	for i, c := range b.Columns {
		if c.ID == columnID {
			return c, i
		}
	}
	return nil, -1
}

// Inbox returns the reserved Inbox column.
func (b *Board) Inbox() *Column {
	c, _ := b.Column(InboxColumnID)
	return c
}

// ColumnOf returns the column currently holding cardID and the card's index in it.
func (b *Board) ColumnOf(cardID string) (*Column, int) {
	for _, c := range b.Columns {
		if i := indexOf(c.CardIDs, cardID); i >= 0 {
			return c, i
		}
	}
	return nil, -1
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	out := &Board{
		ID:        b.ID,
		Title:     b.Title,
		Columns:   make([]*Column, len(b.Columns)),
		Cards:     make(map[string]*Card, len(b.Cards)),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for i, c := range b.Columns {
		out.Columns[i] = &Column{ID: c.ID, Title: c.Title, CardIDs: append([]string{}, c.CardIDs...)}
	}
	for id, c := range b.Cards {
		out.Cards[id] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of c.
func (c *Card) Clone() *Card {
	out := *c
	out.Annotation = c.Annotation.Clone()
	return &out
}

// Clone returns a deep copy of a, duplicating every optional field.
func (a Annotation) Clone() Annotation {
	out := a
	out.Source.ExternalKey = cloneString(a.Source.ExternalKey)
	out.Source.ExternalURL = cloneString(a.Source.ExternalURL)
	out.PaperID = cloneString(a.PaperID)
	out.PaperTitle = cloneString(a.PaperTitle)
	if a.PDF != nil {
		pdf := *a.PDF
		pdf.AnnotationID = cloneString(a.PDF.AnnotationID)
		if a.PDF.Page != nil {
			p := *a.PDF.Page
			pdf.Page = &p
		}
		out.PDF = &pdf
	}
	return out
}

// DedupKey identifies an annotation for import deduplication.
type DedupKey struct {
	Quote    string
	PaperID  string
	HasPaper bool
}

// KeyOf returns the (quote, paper id) dedup key of a.
func KeyOf(a Annotation) DedupKey {
	k := DedupKey{Quote: a.Quote}
	if a.PaperID != nil {
		k.PaperID = *a.PaperID
		k.HasPaper = true
	}
	return k
}

// String returns a pointer to s. Used to populate optional fields.
func String(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Deref returns the value of an optional string, or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
