package primary

import "context"

// ExportService defines the primary port for exporting boards.
type ExportService interface {
	// ExportMarkdown renders a board as Markdown.
	ExportMarkdown(ctx context.Context, boardID string) (string, error)

	// ExportToFile renders a board and writes it to path atomically.
	ExportToFile(ctx context.Context, boardID, path string) error

	// ExportToClipboard renders a board and copies it to the system clipboard.
	ExportToClipboard(ctx context.Context, boardID string) error
}
