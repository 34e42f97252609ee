package board

import (
	"fmt"
	"strings"
	"time"
)

// CardPatch is a shallow update for a card. Nil fields are left untouched.
type CardPatch struct {
	Quote      *string
	Source     *Source
	PDF        *PDFRef
	ClearPDF   bool
	MyNote     *string
	PaperID    *string
	PaperTitle *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CardPatch) IsEmpty() bool {
	return p.Quote == nil && p.Source == nil && p.PDF == nil && !p.ClearPDF &&
		p.MyNote == nil && p.PaperID == nil && p.PaperTitle == nil
}

// New creates a board holding only the Inbox column.
func New(id, title string, now time.Time) *Board {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultBoardTitle
	}
	return &Board{
		ID:    id,
		Title: title,
		Columns: []*Column{
			{ID: InboxColumnID, Title: InboxTitle, CardIDs: []string{}},
		},
		Cards:     map[string]*Card{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a mutation time.
func (b *Board) Touch(now time.Time) {
	b.UpdatedAt = now
}

// Rename changes the board title. Blank titles are ignored.
func (b *Board) Rename(title string, now time.Time) bool {
	title = strings.TrimSpace(title)
	if title == "" || title == b.Title {
		return false
	}
	b.Title = title
	b.Touch(now)
	return true
}

// AddColumn appends a new column. It is never placed at index 0.
func (b *Board) AddColumn(id, title string, now time.Time) *Column {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultColumnTitle
	}
	col := &Column{ID: id, Title: title, CardIDs: []string{}}
	b.Columns = append(b.Columns, col)
	b.Touch(now)
	return col
}

// RenameColumn changes a column title. Unknown columns and blank titles are no-ops.
func (b *Board) RenameColumn(columnID, title string, now time.Time) bool {
	title = strings.TrimSpace(title)
	col, _ := b.Column(columnID)
	if col == nil || title == "" || title == col.Title {
		return false
	}
	col.Title = title
	b.Touch(now)
	return true
}

// DeleteColumn removes a non-Inbox column, moving its cards to the end of the
// Inbox in their existing order. An unknown column id is a no-op (false with
// an allowed result); a rejected call leaves the board untouched.
func (b *Board) DeleteColumn(columnID string, now time.Time) (bool, GuardResult) {
	col, idx := b.Column(columnID)
	if col == nil {
		return false, GuardResult{Allowed: true}
	}
	guard := CanDeleteColumn(DeleteColumnContext{ColumnID: columnID})
	if !guard.Allowed {
		return false, guard
	}

	inbox := b.Inbox()
	inbox.CardIDs = append(inbox.CardIDs, col.CardIDs...)
	b.Columns = append(b.Columns[:idx], b.Columns[idx+1:]...)
	b.Touch(now)
	return true, guard
}

// AddCard places a new card built from a at the end of the column.
// It returns nil without error when the column does not exist.
func (b *Board) AddCard(columnID, id string, a Annotation, now time.Time) (*Card, error) {
	col, _ := b.Column(columnID)
	if col == nil {
		return nil, nil
	}
	if guard := CanAddCard(AddCardContext{ColumnID: columnID, ColumnExists: true, Quote: a.Quote}); !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, guard.Reason)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: card id is required", ErrInvalid)
	}
	if _, exists := b.Cards[id]; exists {
		return nil, fmt.Errorf("%w: card %s already exists", ErrInvalid, id)
	}

	card := &Card{ID: id, Annotation: a.Clone()}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	b.Cards[id] = card
	col.CardIDs = append(col.CardIDs, id)
	b.Touch(now)
	return card, nil
}

// UpdateCard shallow-merges p into the card. Unknown cards are no-ops.
// A patch that would blank the quote is rejected.
func (b *Board) UpdateCard(cardID string, p CardPatch, now time.Time) (bool, error) {
	card, ok := b.Cards[cardID]
	if !ok || p.IsEmpty() {
		return false, nil
	}
	if p.Quote != nil && strings.TrimSpace(*p.Quote) == "" {
		return false, fmt.Errorf("%w: card quote must not be empty", ErrInvalid)
	}

	if p.Quote != nil {
		card.Quote = *p.Quote
	}
	if p.Source != nil {
		card.Source = Annotation{Source: *p.Source}.Clone().Source
	}
	if p.ClearPDF {
		card.PDF = nil
	}
	if p.PDF != nil {
		card.PDF = Annotation{PDF: p.PDF}.Clone().PDF
	}
	if p.MyNote != nil {
		card.MyNote = *p.MyNote
	}
	if p.PaperID != nil {
		card.PaperID = cloneString(p.PaperID)
	}
	if p.PaperTitle != nil {
		card.PaperTitle = cloneString(p.PaperTitle)
	}
	b.Touch(now)
	return true, nil
}

// DeleteCard removes the card from its column and from the board.
// Unknown cards are no-ops.
func (b *Board) DeleteCard(cardID string, now time.Time) bool {
	_, known := b.Cards[cardID]
	col, idx := b.ColumnOf(cardID)
	if !known && col == nil {
		return false
	}
	if col != nil {
		col.CardIDs = append(col.CardIDs[:idx], col.CardIDs[idx+1:]...)
	}
	delete(b.Cards, cardID)
	b.Touch(now)
	return true
}
