package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/annoboard/internal/ports/primary"
)

// ExportAdapter translates CLI operations to ExportService calls.
type ExportAdapter struct {
	service primary.ExportService
	out     io.Writer
}

// NewExportAdapter creates a new ExportAdapter with the given service.
func NewExportAdapter(service primary.ExportService, out io.Writer) *ExportAdapter {
	return &ExportAdapter{
		service: service,
		out:     out,
	}
}

// Export writes the board's Markdown to outPath and/or the clipboard.
// With neither requested, the Markdown is printed.
func (a *ExportAdapter) Export(ctx context.Context, boardID, outPath string, toClipboard bool) error {
	if outPath == "" && !toClipboard {
		md, err := a.service.ExportMarkdown(ctx, boardID)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, md)
		return nil
	}

	if outPath != "" {
		if err := a.service.ExportToFile(ctx, boardID, outPath); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "✓ Exported %s to %s\n", boardID, outPath)
	}
	if toClipboard {
		if err := a.service.ExportToClipboard(ctx, boardID); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "✓ Copied to clipboard")
	}
	return nil
}
