package board

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	b := newTestBoard(t)
	b.Cards["c1"].Source = Source{Text: "Smith, 2020", ExternalKey: String("ABC123"), ExternalURL: String("zotero://select/items/ABC123")}
	b.Cards["c1"].PDF = &PDFRef{URL: "zotero://open-pdf/items/ABC123?page=3", Page: Int(3)}
	b.Cards["c2"].PaperID = String("paper-1")
	b.Cards["c2"].PaperTitle = String("")

	data, err := MarshalSnapshot(b)
	if err != nil {
		t.Fatalf("MarshalSnapshot failed: %v", err)
	}
	got, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(got, b) {
		t.Errorf("round trip mismatch\n got: %#v\nwant: %#v", got, b)
	}
	if got.Cards["c2"].PaperTitle == nil {
		t.Error("present-but-empty paper title must survive the round trip")
	}
	if got.Cards["c3"].PDF != nil {
		t.Error("absent pdf must stay absent")
	}

	again, _ := MarshalSnapshot(got)
	if !bytes.Equal(data, again) {
		t.Error("snapshot encoding is not deterministic")
	}
}

func TestSnapshot_Shape(t *testing.T) {
	b := newTestBoard(t)
	data, err := MarshalSnapshot(b)
	if err != nil {
		t.Fatalf("MarshalSnapshot failed: %v", err)
	}
	for _, field := range []string{`"id":`, `"title":`, `"columns":`, `"cardIds":`, `"cards":`, `"createdAt":`, `"updatedAt":`, `"myNote":`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("snapshot missing field %s", field)
		}
	}
}

func TestUnmarshalSnapshot_RejectsBrokenBoards(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"id":`},
		{"missing inbox", `{"id":"b","title":"t","columns":[{"id":"col_x","title":"x","cardIds":[]}],"cards":{}}`},
		{"dangling card", `{"id":"b","title":"t","columns":[{"id":"col_inbox","title":"Inbox","cardIds":["c9"]}],"cards":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalSnapshot([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	_, err := UnmarshalSnapshot([]byte(tests[1].data))
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant, got %v", err)
	}
}

func TestUnmarshalSnapshot_FillsNilCollections(t *testing.T) {
	got, err := UnmarshalSnapshot([]byte(`{"id":"b","title":"t","columns":[{"id":"col_inbox","title":"Inbox"}]}`))
	if err != nil {
		t.Fatalf("UnmarshalSnapshot failed: %v", err)
	}
	if got.Cards == nil || got.Inbox().CardIDs == nil {
		t.Error("expected empty, non-nil collections")
	}
}
