package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/natefinch/atomic"
	log "github.com/sirupsen/logrus"

	"github.com/example/annoboard/internal/core/markdown"
	"github.com/example/annoboard/internal/ports/primary"
)

// Overridable in tests.
var (
	clipboardWrite = clipboard.WriteAll
	writeFile      = func(path, content string) error {
		return atomic.WriteFile(path, strings.NewReader(content))
	}
)

// ExportServiceImpl implements the ExportService interface.
type ExportServiceImpl struct {
	boardService primary.BoardService
	opts         markdown.Options
	logger       *log.Logger
}

// NewExportService creates a new ExportService with injected dependencies.
func NewExportService(boardService primary.BoardService, opts markdown.Options, logger *log.Logger) *ExportServiceImpl {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ExportServiceImpl{
		boardService: boardService,
		opts:         opts,
		logger:       logger,
	}
}

// ExportMarkdown renders a board as Markdown.
func (s *ExportServiceImpl) ExportMarkdown(ctx context.Context, boardID string) (string, error) {
	b, err := s.boardService.GetBoard(ctx, boardID)
	if err != nil {
		return "", err
	}
	return markdown.ToMarkdown(b, s.opts), nil
}

// ExportToFile renders a board and writes it to path atomically.
func (s *ExportServiceImpl) ExportToFile(ctx context.Context, boardID, path string) error {
	md, err := s.ExportMarkdown(ctx, boardID)
	if err != nil {
		return err
	}
	if err := writeFile(path, md); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.WithFields(log.Fields{"board_id": boardID, "path": path}).Info("board exported")
	return nil
}

// ExportToClipboard renders a board and copies it to the system clipboard.
func (s *ExportServiceImpl) ExportToClipboard(ctx context.Context, boardID string) error {
	md, err := s.ExportMarkdown(ctx, boardID)
	if err != nil {
		return err
	}
	if err := clipboardWrite(md); err != nil {
		return fmt.Errorf("failed to copy export to clipboard: %w", err)
	}
	return nil
}
