package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/extract"
	"github.com/example/annoboard/internal/core/link"
	"github.com/example/annoboard/internal/ports/primary"
	"github.com/example/annoboard/internal/ports/secondary"
)

// errNoNoteText marks a paper that has nothing to extract from.
var errNoNoteText = errors.New("paper has no note text")

// ImportServiceImpl implements the ImportService interface.
type ImportServiceImpl struct {
	boardService primary.BoardService
	catalog      secondary.PaperCatalog
	extractor    *extract.Extractor
	logger       *log.Logger
}

// NewImportService creates a new ImportService with injected dependencies.
// catalog may be nil when only ImportFromPapers and Preview are used.
func NewImportService(boardService primary.BoardService, catalog secondary.PaperCatalog, extractor *extract.Extractor, logger *log.Logger) *ImportServiceImpl {
	if extractor == nil {
		extractor = extract.New(extract.Options{})
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ImportServiceImpl{
		boardService: boardService,
		catalog:      catalog,
		extractor:    extractor,
		logger:       logger,
	}
}

// ImportFromPapers adds the annotations found in each paper's notes to the
// board's Inbox, skipping those whose (quote, paper) pair is already on the
// board. Each inserted card is persisted on its own, so stopping between
// papers leaves the board consistent. On cancellation the partial result is
// returned together with the context error.
func (s *ImportServiceImpl) ImportFromPapers(ctx context.Context, boardID string, papers []primary.SourcePaper) (*primary.ImportResult, error) {
	b, err := s.boardService.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	seen := make(map[board.DedupKey]bool, len(b.Cards))
	for _, c := range b.Cards {
		seen[board.KeyOf(c.Annotation)] = true
	}

	result := &primary.ImportResult{BoardID: boardID}
	for _, paper := range papers {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Papers++

		inserted, skipped, err := s.importPaper(ctx, boardID, paper, seen)
		result.Inserted += inserted
		result.Skipped += skipped
		if err != nil {
			s.recordFailure(result, paper.ID, err)
		}
	}

	s.logger.WithFields(log.Fields{
		"board_id": boardID,
		"papers":   result.Papers,
		"inserted": result.Inserted,
		"skipped":  result.Skipped,
		"failures": len(result.Failures),
	}).Info("import finished")
	return result, nil
}

// ImportFromCatalog imports papers read from the paper catalog. Papers that
// cannot be read are recorded as failures.
func (s *ImportServiceImpl) ImportFromCatalog(ctx context.Context, boardID string, paperIDs []string) (*primary.ImportResult, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("no paper catalog configured")
	}

	var records []*secondary.PaperRecord
	var failures []primary.ImportFailure
	if len(paperIDs) == 0 {
		all, err := s.catalog.ListPapers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list papers: %w", err)
		}
		records = all
	} else {
		for _, id := range paperIDs {
			record, err := s.catalog.GetPaper(ctx, id)
			if err != nil {
				s.logger.WithError(err).WithField("paper_id", id).Warn("paper skipped")
				failures = append(failures, primary.ImportFailure{PaperID: id, Reason: err.Error()})
				continue
			}
			records = append(records, record)
		}
	}

	papers := make([]primary.SourcePaper, len(records))
	for i, r := range records {
		papers[i] = recordToSourcePaper(r)
	}

	result, err := s.ImportFromPapers(ctx, boardID, papers)
	if result != nil {
		result.Papers += len(failures)
		result.Failures = append(failures, result.Failures...)
	}
	return result, err
}

// ScanCatalog reports which catalog papers carry annotations.
func (s *ImportServiceImpl) ScanCatalog(ctx context.Context) ([]*primary.PaperScan, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("no paper catalog configured")
	}
	records, err := s.catalog.ListPapers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}

	scans := make([]*primary.PaperScan, 0, len(records))
	for _, r := range records {
		text := recordToSourcePaper(r).NoteText()
		scans = append(scans, &primary.PaperScan{
			PaperID:        r.ID,
			Title:          r.Title,
			HasAnnotations: s.extractor.HasAnnotations(text),
			Count:          s.extractor.CountAnnotations(text),
		})
	}
	return scans, nil
}

// Preview runs extraction without touching any board.
func (s *ImportServiceImpl) Preview(ctx context.Context, text string, paper *primary.SourcePaper) ([]board.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var pc *extract.PaperContext
	if paper != nil {
		pc = paperContext(*paper)
	}
	return s.extractor.Extract(text, pc), nil
}

// AddFromText adds the annotations found in pasted text to the column. The
// column is checked before anything is written.
func (s *ImportServiceImpl) AddFromText(ctx context.Context, boardID, columnID, text string) ([]*board.Card, error) {
	annotations := s.extractor.Extract(text, nil)
	if len(annotations) == 0 {
		return nil, primary.ErrNoAnnotations
	}

	b, err := s.boardService.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if col, _ := b.Column(columnID); col == nil {
		return nil, fmt.Errorf("column %s not found", columnID)
	}

	cards := make([]*board.Card, 0, len(annotations))
	for _, a := range annotations {
		if err := ctx.Err(); err != nil {
			return cards, err
		}
		card, err := s.boardService.AddCard(ctx, primary.AddCardRequest{
			BoardID:    boardID,
			ColumnID:   columnID,
			Annotation: a,
		})
		if err != nil {
			return cards, fmt.Errorf("failed to add card: %w", err)
		}
		if card == nil {
			return cards, fmt.Errorf("column %s not found", columnID)
		}
		cards = append(cards, card)
	}

	s.logger.WithFields(log.Fields{
		"board_id":  boardID,
		"column_id": columnID,
		"cards":     len(cards),
	}).Info("cards added from text")
	return cards, nil
}

// Links lists the deep links in text using the extractor's scheme.
func (s *ImportServiceImpl) Links(ctx context.Context, text string) ([]link.LabeledLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return link.FindAll(text, s.extractor.Options().Scheme), nil
}

func (s *ImportServiceImpl) importPaper(ctx context.Context, boardID string, paper primary.SourcePaper, seen map[board.DedupKey]bool) (int, int, error) {
	text := paper.NoteText()
	if strings.TrimSpace(text) == "" {
		return 0, 0, errNoNoteText
	}

	inserted, skipped := 0, 0
	for _, a := range s.extractor.Extract(text, paperContext(paper)) {
		key := board.KeyOf(a)
		if seen[key] {
			skipped++
			continue
		}

		card, err := s.boardService.AddCard(ctx, primary.AddCardRequest{
			BoardID:    boardID,
			ColumnID:   board.InboxColumnID,
			Annotation: a,
		})
		if err != nil {
			return inserted, skipped, fmt.Errorf("failed to add card: %w", err)
		}
		if card == nil {
			return inserted, skipped, fmt.Errorf("board %s has no Inbox", boardID)
		}
		seen[key] = true
		inserted++
	}
	return inserted, skipped, nil
}

func (s *ImportServiceImpl) recordFailure(result *primary.ImportResult, paperID string, err error) {
	s.logger.WithError(err).WithFields(log.Fields{
		"board_id": result.BoardID,
		"paper_id": paperID,
	}).Warn("paper skipped")
	result.Failures = append(result.Failures, primary.ImportFailure{PaperID: paperID, Reason: err.Error()})
}

func paperContext(p primary.SourcePaper) *extract.PaperContext {
	return &extract.PaperContext{
		ID:          p.ID,
		Title:       p.Title,
		ExternalKey: p.ExternalKey,
		Authors:     p.Authors,
		Year:        p.Year,
	}
}

func recordToSourcePaper(r *secondary.PaperRecord) primary.SourcePaper {
	return primary.SourcePaper{
		ID:          r.ID,
		Title:       r.Title,
		Authors:     r.Authors,
		Year:        r.Year,
		ExternalKey: r.ZoteroKey,
		Notes:       r.Notes,
		NotesHTML:   r.NotesHTML,
	}
}
