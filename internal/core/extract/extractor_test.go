package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/example/annoboard/internal/core/board"
)

const longQuote = "attention is a bottleneck for long contexts"

func TestExtract_NoQuotes(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"plain text without any quoted span ([Smith](zotero://select/items/A))",
		"[pdf](zotero://open-pdf/items/A?page=1)",
	}
	for _, in := range inputs {
		if got := Extract(in, nil); len(got) != 0 {
			t.Errorf("Extract(%q) = %d annotations, want 0", in, len(got))
		}
	}
}

func TestExtract_PrimaryFullRecord(t *testing.T) {
	text := `"X" ([Smith, 2020, p.1](zotero://select/items/ABC123)) ([pdf](zotero://open-pdf/items/ABC123?page=3&annotation=XYZ)) hello`

	got := Extract(text, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(got))
	}
	a := got[0]
	if a.Quote != "X" {
		t.Errorf("Quote = %q", a.Quote)
	}
	if a.Source.Text != "Smith, 2020, p.1" {
		t.Errorf("Source.Text = %q", a.Source.Text)
	}
	if board.Deref(a.Source.ExternalKey) != "ABC123" {
		t.Errorf("ExternalKey = %v", a.Source.ExternalKey)
	}
	if board.Deref(a.Source.ExternalURL) != "zotero://select/items/ABC123" {
		t.Errorf("ExternalURL = %v", a.Source.ExternalURL)
	}
	if a.PDF == nil || a.PDF.Page == nil || *a.PDF.Page != 3 {
		t.Fatalf("PDF = %+v, want page 3", a.PDF)
	}
	if board.Deref(a.PDF.AnnotationID) != "XYZ" {
		t.Errorf("AnnotationID = %v", a.PDF.AnnotationID)
	}
	if a.MyNote != "hello" {
		t.Errorf("MyNote = %q", a.MyNote)
	}
	if a.PaperID != nil || a.PaperTitle != nil {
		t.Error("no paper context was given")
	}
	if !a.CreatedAt.IsZero() {
		t.Error("extraction must not stamp CreatedAt")
	}
}

func TestExtract_PrimaryOptionalGroupsAbsent(t *testing.T) {
	text := `"only a citation" ([Doe, 2019](zotero://select/library/items/K1))`

	got := Extract(text, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(got))
	}
	if got[0].PDF != nil {
		t.Errorf("PDF should be absent, got %+v", got[0].PDF)
	}
	if got[0].MyNote != "" {
		t.Errorf("MyNote = %q, want empty", got[0].MyNote)
	}
}

func TestExtract_PrimaryMultipleInOrder(t *testing.T) {
	text := "Reading notes\n" +
		`"first" ([A, 2001](zotero://select/items/A1)) note one` + "\n" +
		`"second" ([B, 2002](zotero://select/items/B2)) ([pdf](zotero://open-pdf/items/B2?page=7)) note two` + "\n" +
		`"third" ([C, 2003](zotero://select/items/C3))`

	got := Extract(text, nil)
	var quotes, notes []string
	for _, a := range got {
		quotes = append(quotes, a.Quote)
		notes = append(notes, a.MyNote)
	}
	if !reflect.DeepEqual(quotes, []string{"first", "second", "third"}) {
		t.Errorf("quotes = %v", quotes)
	}
	if !reflect.DeepEqual(notes, []string{"note one", "note two", ""}) {
		t.Errorf("notes = %v", notes)
	}
	if got[1].PDF == nil || *got[1].PDF.Page != 7 || got[1].PDF.AnnotationID != nil {
		t.Errorf("unexpected pdf on second annotation: %+v", got[1].PDF)
	}
}

func TestExtract_PrimarySkipsUnlinkedQuotes(t *testing.T) {
	text := `He said "hi" to me. "linked" ([S](zotero://select/items/S1)) kept`

	got := Extract(text, nil)
	if len(got) != 1 || got[0].Quote != "linked" || got[0].MyNote != "kept" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestExtract_BlankQuoteIsDiscarded(t *testing.T) {
	text := `"   " ([S](zotero://select/items/S1)) ignored`
	if got := Extract(text, nil); len(got) != 0 {
		t.Errorf("expected blank quote to be discarded, got %+v", got)
	}
}

func TestExtract_PaperContextAttached(t *testing.T) {
	paper := &PaperContext{ID: "p-42", Title: "Transformers", ExternalKey: "PK"}
	text := `"q" ([S](zotero://select/items/S1))`

	got := Extract(text, paper)
	if len(got) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(got))
	}
	if board.Deref(got[0].PaperID) != "p-42" || board.Deref(got[0].PaperTitle) != "Transformers" {
		t.Errorf("paper context not attached: %+v", got[0])
	}
	if board.Deref(got[0].Source.ExternalKey) != "S1" {
		t.Error("paper context must not override a parsed link key in the primary grammar")
	}
	if !reflect.DeepEqual(Extract(text, nil)[0].Quote, got[0].Quote) {
		t.Error("paper context must not affect parsing")
	}
}

func TestExtract_FallbackWithLinks(t *testing.T) {
	text := `"` + longQuote + `" - [Vaswani, 2017](zotero://select/items/V17) and [PDF](zotero://open-pdf/items/V17?page=5) ) worth citing "next"`

	got := Extract(text, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 annotation, got %d: %+v", len(got), got)
	}
	a := got[0]
	if a.Quote != longQuote {
		t.Errorf("Quote = %q", a.Quote)
	}
	if a.Source.Text != "Vaswani, 2017" || board.Deref(a.Source.ExternalKey) != "V17" {
		t.Errorf("Source = %+v", a.Source)
	}
	if a.PDF == nil || *a.PDF.Page != 5 {
		t.Errorf("PDF = %+v", a.PDF)
	}
	if a.MyNote != "worth citing" {
		t.Errorf("MyNote = %q", a.MyNote)
	}
}

func TestExtract_FallbackNote(t *testing.T) {
	tests := []struct {
		name     string
		trailer  string
		wantNote string
	}{
		{"keeps a parenthetical inside the note", " the method (section 3) is weak", "the method (section 3) is weak"},
		{"keeps brackets inside the note", " compare [1] and [2]", "compare [1] and [2]"},
		{"stops at the next quote", ` worth it "` + longQuote + `"`, "worth it"},
		{"remainder opening with a parenthetical", " (see appendix) later", ""},
		{"remainder opening with a bracket", " [todo] check", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := `"` + longQuote + `" see [Smith 2020](zotero://select/items/K1)` + tt.trailer

			got := Extract(text, nil)
			if len(got) == 0 {
				t.Fatal("expected an annotation")
			}
			if board.Deref(got[0].Source.ExternalKey) != "K1" {
				t.Errorf("ExternalKey = %v, want K1", got[0].Source.ExternalKey)
			}
			if got[0].MyNote != tt.wantNote {
				t.Errorf("MyNote = %q, want %q", got[0].MyNote, tt.wantNote)
			}
		})
	}
}

func TestExtract_FallbackWithoutLinksUsesPaper(t *testing.T) {
	paper := &PaperContext{ID: "p1", Authors: "Hinton, G., LeCun, Y.", Year: "2015", ExternalKey: "HK"}
	text := `Key idea: "` + longQuote + `" short "tiny" end`

	got := Extract(text, paper)
	if len(got) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(got))
	}
	if got[0].Source.Text != "Hinton, 2015" {
		t.Errorf("Source.Text = %q", got[0].Source.Text)
	}
	if board.Deref(got[0].Source.ExternalKey) != "HK" {
		t.Errorf("ExternalKey = %v", got[0].Source.ExternalKey)
	}
	if got[0].Source.ExternalURL != nil || got[0].PDF != nil || got[0].MyNote != "" {
		t.Errorf("expected no links or note, got %+v", got[0])
	}

	anon := Extract(text, nil)
	if anon[0].Source.Text != "Unknown, ?" {
		t.Errorf("Source.Text without paper = %q", anon[0].Source.Text)
	}
}

func TestExtract_FallbackMinQuoteLength(t *testing.T) {
	text := `"nineteen chars here" and "twenty characters ok"`
	got := Extract(text, nil)
	if len(got) != 1 || got[0].Quote != "twenty characters ok" {
		t.Fatalf("unexpected result %+v", got)
	}

	custom := New(Options{MinQuoteLength: 5}).Extract(text, nil)
	if len(custom) != 2 {
		t.Errorf("expected 2 annotations with a lower minimum, got %d", len(custom))
	}
}

func TestExtract_FallbackWindowEdge(t *testing.T) {
	cite := "[S](zotero://select/items/EDGE)"
	quote := `"` + longQuote + `"`

	e := New(Options{Window: 40})
	pad := strings.Repeat(" ", 40-len(cite))

	inside := e.Extract(quote+pad+cite, nil)
	if len(inside) != 1 || board.Deref(inside[0].Source.ExternalKey) != "EDGE" {
		t.Errorf("link ending exactly at the window edge must be found: %+v", inside)
	}

	outside := e.Extract(quote+pad+" "+cite, nil)
	if len(outside) != 1 || outside[0].Source.ExternalKey != nil {
		t.Errorf("link crossing the window edge must be ignored: %+v", outside)
	}
}

func TestExtract_CustomScheme(t *testing.T) {
	e := New(Options{Scheme: "bookends"})
	got := e.Extract(`"q" ([S](bookends://select/items/B1))`, nil)
	if len(got) != 1 || board.Deref(got[0].Source.ExternalKey) != "B1" {
		t.Errorf("unexpected result %+v", got)
	}
	if len(e.Extract(`"q" ([S](zotero://select/items/B1))`, nil)) != 0 {
		t.Error("other schemes must not match")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := `"a" ([S](zotero://select/items/A)) n1 "b" ([T](zotero://select/items/B)) n2`
	if !reflect.DeepEqual(Extract(text, nil), Extract(text, nil)) {
		t.Error("extraction is not deterministic")
	}
}

func TestExtract_MalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		`"`,
		`""`,
		`"unterminated ([S](zotero://select/items/A))`,
		`"q" (`,
		`"q" ([`,
		`"q" ([S](zotero://`,
		`"q" ([S](zotero://select/items/A)`,
		`"q" ([S](zotero://select/items/A)) ([pdf](zotero://open-pdf`,
		`"` + longQuote + `" [`,
		"\"" + longQuote + "\" \xff\xfe [S](zotero://select/x)",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Extract(%q) panicked: %v", in, r)
				}
			}()
			for _, a := range Extract(in, nil) {
				if strings.TrimSpace(a.Quote) == "" {
					t.Errorf("Extract(%q) produced an empty quote", in)
				}
			}
		}()
	}
}

func TestHasAndCountAnnotations(t *testing.T) {
	e := New(Options{})
	text := `"` + longQuote + `" ([S](zotero://select/items/A)) and "` + longQuote + ` again" plus "short"`

	if !e.HasAnnotations(text) {
		t.Error("expected HasAnnotations to be true")
	}
	if e.HasAnnotations(`"` + longQuote + `" no links`) {
		t.Error("expected HasAnnotations to require a deep link")
	}
	if n := e.CountAnnotations(text); n != 2 {
		t.Errorf("CountAnnotations = %d, want 2", n)
	}
}
