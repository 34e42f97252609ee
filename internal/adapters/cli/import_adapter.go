package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/link"
	"github.com/example/annoboard/internal/ports/primary"
)

// ImportAdapter translates CLI operations to ImportService calls.
type ImportAdapter struct {
	service primary.ImportService
	out     io.Writer
}

// NewImportAdapter creates a new ImportAdapter with the given service.
func NewImportAdapter(service primary.ImportService, out io.Writer) *ImportAdapter {
	return &ImportAdapter{
		service: service,
		out:     out,
	}
}

// Import imports annotations from catalog papers into the board's Inbox.
// An empty paperIDs imports every paper.
func (a *ImportAdapter) Import(ctx context.Context, boardID string, paperIDs []string) (*primary.ImportResult, error) {
	result, err := a.service.ImportFromCatalog(ctx, boardID, paperIDs)
	if result != nil {
		a.printResult(result)
	}
	return result, err
}

func (a *ImportAdapter) printResult(result *primary.ImportResult) {
	if result.Inserted > 0 {
		fmt.Fprintf(a.out, "✓ Imported %d annotations to %s", result.Inserted, board.InboxTitle)
		if result.Skipped > 0 {
			fmt.Fprintf(a.out, " (%d duplicates skipped)", result.Skipped)
		}
		fmt.Fprintln(a.out)
	} else {
		fmt.Fprintln(a.out, "No new annotations to import (duplicates skipped)")
	}

	warn := color.New(color.FgYellow)
	for _, f := range result.Failures {
		fmt.Fprintf(a.out, "  %s %s: %s\n", warn.Sprint("⚠"), f.PaperID, f.Reason)
	}
}

// Scan lists catalog papers that carry annotations. With all set, papers
// without annotations are listed too.
func (a *ImportAdapter) Scan(ctx context.Context, all bool) ([]*primary.PaperScan, error) {
	scans, err := a.service.ScanCatalog(ctx)
	if err != nil {
		return nil, err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PAPER\tANNOTATIONS\tTITLE")
	fmt.Fprintln(w, "-----\t-----------\t-----")

	shown := 0
	for _, s := range scans {
		if !s.HasAnnotations && !all {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.PaperID, s.Count, s.Title)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Fprintln(a.out, "No papers with annotations found.")
	}
	return scans, nil
}

// Parse previews the annotations found in text.
func (a *ImportAdapter) Parse(ctx context.Context, text string, paper *primary.SourcePaper) ([]board.Annotation, error) {
	annotations, err := a.service.Preview(ctx, text, paper)
	if err != nil {
		return nil, err
	}

	if len(annotations) == 0 {
		fmt.Fprintln(a.out, "No annotations found.")
		return annotations, nil
	}

	for i, ann := range annotations {
		fmt.Fprintf(a.out, "%s %q\n", color.New(color.FgCyan).Sprintf("[%d]", i+1), ann.Quote)
		if ann.Source.Text != "" {
			fmt.Fprintf(a.out, "    source: %s", ann.Source.Text)
			if key := board.Deref(ann.Source.ExternalKey); key != "" {
				fmt.Fprintf(a.out, " (%s)", key)
			}
			fmt.Fprintln(a.out)
		}
		if ann.PDF != nil {
			fmt.Fprintf(a.out, "    pdf:    %s\n", ann.PDF.URL)
		}
		if ann.MyNote != "" {
			fmt.Fprintf(a.out, "    note:   %s\n", ann.MyNote)
		}
	}

	links, err := a.service.Links(ctx, text)
	if err != nil {
		return annotations, err
	}
	a.printLinks(links)
	return annotations, nil
}

func (a *ImportAdapter) printLinks(links []link.LabeledLink) {
	if len(links) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\nLinks (%d):\n", len(links))
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, l := range links {
		detail := l.Link.Key
		if l.Link.Page != nil {
			detail += fmt.Sprintf(" p.%d", *l.Link.Page)
		}
		if l.Link.AnnotationID != nil {
			detail += " #" + *l.Link.AnnotationID
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", l.Link.Kind, detail, l.Label)
	}
	w.Flush()
}

// AddRaw extracts annotations from pasted text into a column.
func (a *ImportAdapter) AddRaw(ctx context.Context, boardID, columnID, text string) ([]*board.Card, error) {
	cards, err := a.service.AddFromText(ctx, boardID, columnID, text)
	if errors.Is(err, primary.ErrNoAnnotations) {
		return nil, fmt.Errorf("%w\nHint: wrap the quote in double quotes, e.g. \"...\" ([Author, 2020](zotero://select/items/KEY))", err)
	}
	for _, c := range cards {
		fmt.Fprintf(a.out, "✓ Added card %s to %s\n", c.ID, columnID)
	}
	return cards, err
}
