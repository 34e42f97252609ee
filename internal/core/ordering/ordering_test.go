package ordering

import (
	"reflect"
	"testing"
	"time"

	"github.com/example/annoboard/internal/core/board"
)

var (
	t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	t1 = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
)

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New("board_1", "Reading", t0)
	b.AddColumn("col_a", "Ideas", t0)
	b.AddColumn("col_b", "Drafts", t0)
	for _, id := range []string{"A", "B", "C"} {
		if _, err := b.AddCard("col_a", id, board.Annotation{Quote: "quote " + id}, t0); err != nil {
			t.Fatalf("AddCard failed: %v", err)
		}
	}
	if _, err := b.AddCard("col_b", "D", board.Annotation{Quote: "quote D"}, t0); err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	return b
}

func columnIDs(b *board.Board) []string {
	ids := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		ids[i] = c.ID
	}
	return ids
}

func TestMoveCard(t *testing.T) {
	tests := []struct {
		name   string
		card   string
		from   string
		to     string
		target *int
		wantA  []string
		wantB  []string
	}{
		{
			name:   "same column forward compensates for removal",
			card:   "A",
			from:   "col_a",
			to:     "col_a",
			target: board.Int(2),
			wantA:  []string{"B", "A", "C"},
			wantB:  []string{"D"},
		},
		{
			name:   "same column to end",
			card:   "A",
			from:   "col_a",
			to:     "col_a",
			target: board.Int(3),
			wantA:  []string{"B", "C", "A"},
			wantB:  []string{"D"},
		},
		{
			name:   "same column backward",
			card:   "C",
			from:   "col_a",
			to:     "col_a",
			target: board.Int(0),
			wantA:  []string{"C", "A", "B"},
			wantB:  []string{"D"},
		},
		{
			name:   "same column nil target appends",
			card:   "A",
			from:   "col_a",
			to:     "col_a",
			target: nil,
			wantA:  []string{"B", "C", "A"},
			wantB:  []string{"D"},
		},
		{
			name:   "across columns at front",
			card:   "B",
			from:   "col_a",
			to:     "col_b",
			target: board.Int(0),
			wantA:  []string{"A", "C"},
			wantB:  []string{"B", "D"},
		},
		{
			name:   "across columns target clamped high",
			card:   "B",
			from:   "col_a",
			to:     "col_b",
			target: board.Int(99),
			wantA:  []string{"A", "C"},
			wantB:  []string{"D", "B"},
		},
		{
			name:   "across columns target clamped low",
			card:   "C",
			from:   "col_a",
			to:     "col_b",
			target: board.Int(-4),
			wantA:  []string{"A", "B"},
			wantB:  []string{"C", "D"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)

			if !MoveCard(b, tt.card, tt.from, tt.to, tt.target, t1) {
				t.Fatal("expected move to succeed")
			}

			a, _ := b.Column("col_a")
			bb, _ := b.Column("col_b")
			if !reflect.DeepEqual(a.CardIDs, tt.wantA) {
				t.Errorf("col_a = %v, want %v", a.CardIDs, tt.wantA)
			}
			if !reflect.DeepEqual(bb.CardIDs, tt.wantB) {
				t.Errorf("col_b = %v, want %v", bb.CardIDs, tt.wantB)
			}
			if !b.UpdatedAt.Equal(t1) {
				t.Errorf("UpdatedAt = %v, want %v", b.UpdatedAt, t1)
			}
			if err := board.Validate(b); err != nil {
				t.Errorf("board invalid after move: %v", err)
			}
		})
	}
}

func TestMoveCard_NoOps(t *testing.T) {
	tests := []struct {
		name string
		card string
		from string
		to   string
	}{
		{"unknown source column", "A", "col_x", "col_b"},
		{"unknown destination column", "A", "col_a", "col_x"},
		{"card not in source column", "D", "col_a", "col_b"},
		{"unknown card", "Z", "col_a", "col_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			before := b.Clone()

			if MoveCard(b, tt.card, tt.from, tt.to, board.Int(0), t1) {
				t.Fatal("expected no-op")
			}
			if !reflect.DeepEqual(b, before) {
				t.Error("board changed on a no-op move")
			}
		})
	}
}

func TestMoveCard_WithinColumnOfThree(t *testing.T) {
	b := board.New("board_1", "Reading", t0)
	for _, id := range []string{"0", "1", "2"} {
		if _, err := b.AddCard(board.InboxColumnID, id, board.Annotation{Quote: "q" + id}, t0); err != nil {
			t.Fatalf("AddCard failed: %v", err)
		}
	}

	// Dropping card 0 after element 2 targets index 3 in the pre-removal list.
	MoveCard(b, "0", board.InboxColumnID, board.InboxColumnID, board.Int(3), t1)

	want := []string{"1", "2", "0"}
	if got := b.Inbox().CardIDs; !reflect.DeepEqual(got, want) {
		t.Errorf("Inbox = %v, want %v", got, want)
	}
}

func TestReorderColumn(t *testing.T) {
	b := newTestBoard(t)
	b.AddColumn("col_c", "Done", t0)

	result := ReorderColumn(b, 1, 3, t1)
	if !result.Allowed {
		t.Fatalf("expected reorder to be allowed: %s", result.Reason)
	}

	want := []string{board.InboxColumnID, "col_b", "col_c", "col_a"}
	if got := columnIDs(b); !reflect.DeepEqual(got, want) {
		t.Errorf("columns = %v, want %v", got, want)
	}
	if !b.UpdatedAt.Equal(t1) {
		t.Errorf("UpdatedAt = %v, want %v", b.UpdatedAt, t1)
	}
}

func TestReorderColumn_Rejected(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
	}{
		{"inbox cannot move", 0, 1},
		{"nothing may take index 0", 2, 0},
		{"from out of range", 5, 1},
		{"to out of range", 1, 7},
		{"negative index", -1, 1},
		{"same position", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			before := b.Clone()

			result := ReorderColumn(b, tt.from, tt.to, t1)
			if result.Allowed {
				t.Fatal("expected reorder to be rejected")
			}
			if result.Reason == "" {
				t.Error("expected a reason")
			}
			if !reflect.DeepEqual(b, before) {
				t.Error("board changed on a rejected reorder")
			}
		})
	}
}

func TestRelocate(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		from  int
		to    int
		want  []string
	}{
		{"first to last", []string{"A", "B", "C"}, 0, 2, []string{"B", "C", "A"}},
		{"last to first", []string{"A", "B", "C"}, 2, 0, []string{"C", "A", "B"}},
		{"in place", []string{"A", "B", "C"}, 1, 1, []string{"A", "B", "C"}},
		{"to clamped", []string{"A", "B", "C"}, 0, 10, []string{"B", "C", "A"}},
		{"from out of range", []string{"A", "B"}, 4, 0, []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relocate(append([]string(nil), tt.items...), tt.from, tt.to)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Relocate(%v, %d, %d) = %v, want %v", tt.items, tt.from, tt.to, got, tt.want)
			}
		})
	}
}
