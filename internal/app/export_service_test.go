package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/markdown"
	"github.com/example/annoboard/internal/ports/primary"
)

func newTestExportService(t *testing.T) (*ExportServiceImpl, *board.Board) {
	t.Helper()
	boards, _, _ := newTestBoardService()
	ctx := context.Background()
	b, _ := boards.CreateBoard(ctx, "Reading")
	if _, err := boards.AddCard(ctx, primary.AddCardRequest{
		BoardID:  b.ID,
		ColumnID: board.InboxColumnID,
		Annotation: board.Annotation{
			Quote:  "attention is all you need",
			Source: board.Source{Text: "Vaswani, 2017", ExternalURL: board.String("zotero://select/items/V17")},
		},
	}); err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	stored, _ := boards.GetBoard(ctx, b.ID)
	return NewExportService(boards, markdown.Options{CitationLabel: "Zotero"}, boards.logger), stored
}

func TestExportMarkdown(t *testing.T) {
	service, b := newTestExportService(t)

	got, err := service.ExportMarkdown(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if want := markdown.ToMarkdown(b, markdown.Options{}); got != want {
		t.Errorf("ExportMarkdown =\n%s\nwant\n%s", got, want)
	}
}

func TestExportToFile(t *testing.T) {
	service, b := newTestExportService(t)

	var gotPath, gotContent string
	orig := writeFile
	writeFile = func(path, content string) error {
		gotPath, gotContent = path, content
		return nil
	}
	t.Cleanup(func() { writeFile = orig })

	if err := service.ExportToFile(context.Background(), b.ID, "/tmp/board.md"); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}
	if gotPath != "/tmp/board.md" {
		t.Errorf("path = %q", gotPath)
	}
	if gotContent != markdown.ToMarkdown(b, markdown.Options{}) {
		t.Errorf("unexpected content:\n%s", gotContent)
	}
}

func TestExportToClipboard(t *testing.T) {
	service, b := newTestExportService(t)

	var copied string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	if err := service.ExportToClipboard(context.Background(), b.ID); err != nil {
		t.Fatalf("ExportToClipboard failed: %v", err)
	}
	if copied == "" {
		t.Error("nothing was copied")
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	if err := service.ExportToClipboard(context.Background(), b.ID); err == nil {
		t.Error("expected clipboard error to be returned")
	}
}

func TestExport_UnknownBoard(t *testing.T) {
	service, _ := newTestExportService(t)

	if _, err := service.ExportMarkdown(context.Background(), "board_missing"); !errors.Is(err, board.ErrBoardNotFound) {
		t.Errorf("err = %v, want ErrBoardNotFound", err)
	}
}
