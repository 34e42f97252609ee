// Package app contains the application services that orchestrate business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/core/ordering"
	"github.com/example/annoboard/internal/ports/primary"
	"github.com/example/annoboard/internal/ports/secondary"
)

// BoardServiceImpl implements the BoardService interface.
type BoardServiceImpl struct {
	boardRepo secondary.BoardRepository
	logger    *log.Logger

	// mu serializes load-mutate-save cycles made through this service.
	mu sync.Mutex

	now   func() time.Time
	newID func(prefix string) string
}

// NewBoardService creates a new BoardService with injected dependencies.
func NewBoardService(boardRepo secondary.BoardRepository, logger *log.Logger) *BoardServiceImpl {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardServiceImpl{
		boardRepo: boardRepo,
		logger:    logger,
		now:       timeNow,
		newID:     newID,
	}
}

// CreateBoard creates and persists a board holding only the Inbox.
func (s *BoardServiceImpl) CreateBoard(ctx context.Context, title string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := board.New(s.newID(boardIDPrefix), title, s.now())
	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.logger.WithFields(log.Fields{"board_id": b.ID, "title": b.Title}).Info("board created")
	return b, nil
}

// GetBoard retrieves a board by ID.
func (s *BoardServiceImpl) GetBoard(ctx context.Context, boardID string) (*board.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx, boardID)
}

// ListBoards lists board summaries, most recently updated first.
// Snapshots that cannot be decoded are skipped with a warning.
func (s *BoardServiceImpl) ListBoards(ctx context.Context) ([]board.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.boardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	summaries := make([]board.Summary, 0, len(records))
	for _, r := range records {
		b, err := board.UnmarshalSnapshot(r.Snapshot)
		if err != nil {
			s.logger.WithError(err).WithField("board_id", r.ID).Warn("skipping unreadable board")
			continue
		}
		summaries = append(summaries, board.Summarize(b))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if !summaries[i].UpdatedAt.Equal(summaries[j].UpdatedAt) {
			return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

// RenameBoard changes a board title.
func (s *BoardServiceImpl) RenameBoard(ctx context.Context, boardID, title string) (bool, error) {
	return s.update(ctx, boardID, func(b *board.Board, now time.Time) (bool, error) {
		return b.Rename(title, now), nil
	})
}

// DeleteBoard deletes a board. Unknown boards are a no-op.
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, boardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		if errors.Is(err, board.ErrBoardNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete board: %w", err)
	}

	s.logger.WithField("board_id", boardID).Info("board deleted")
	return true, nil
}

// AddColumn appends a column after the existing ones.
func (s *BoardServiceImpl) AddColumn(ctx context.Context, boardID, title string) (*board.Column, error) {
	var col *board.Column
	_, err := s.update(ctx, boardID, func(b *board.Board, now time.Time) (bool, error) {
		col = b.AddColumn(s.freshID(b, columnIDPrefix), title, now)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return col, nil
}

// RenameColumn changes a column title. Unknown columns are a no-op.
func (s *BoardServiceImpl) RenameColumn(ctx context.Context, boardID, columnID, title string) (bool, error) {
	return s.update(ctx, boardID, func(b *board.Board, now time.Time) (bool, error) {
		return b.RenameColumn(columnID, title, now), nil
	})
}

// DeleteColumn removes a non-Inbox column and moves its cards to the Inbox.
func (s *BoardServiceImpl) DeleteColumn(ctx context.Context, boardID, columnID string) (*primary.DeleteColumnResponse, error) {
	resp := &primary.DeleteColumnResponse{ColumnID: columnID}
	deleted, err := s.update(ctx, boardID, func(b *board.Board, now time.Time) (bool, error) {
		if col, _ := b.Column(columnID); col != nil {
			resp.MovedCards = len(col.CardIDs)
		}
		removed, result := b.DeleteColumn(columnID, now)
		if !result.Allowed {
			return false, result.Error()
		}
		return removed, nil
	})
	if err != nil {
		return nil, err
	}
	if !deleted {
		return resp, nil
	}
	resp.Deleted = true

	s.logger.WithFields(log.Fields{
		"board_id":    boardID,
		"column_id":   columnID,
		"moved_cards": resp.MovedCards,
	}).Info("column deleted")
	return resp, nil
}

// ReorderColumn moves a column between positions.
func (s *BoardServiceImpl) ReorderColumn(ctx context.Context, req primary.ReorderColumnRequest) error {
	_, err := s.update(ctx, req.BoardID, func(b *board.Board, now time.Time) (bool, error) {
		result := ordering.ReorderColumn(b, req.FromIndex, req.ToIndex, now)
		if !result.Allowed {
			return false, result.Error()
		}
		return true, nil
	})
	return err
}

// AddCard places a card at the end of a column. A supplied card ID that is
// empty or already taken is replaced by a generated one.
func (s *BoardServiceImpl) AddCard(ctx context.Context, req primary.AddCardRequest) (*board.Card, error) {
	var card *board.Card
	_, err := s.update(ctx, req.BoardID, func(b *board.Board, now time.Time) (bool, error) {
		id := req.CardID
		if _, taken := b.Cards[id]; id == "" || taken {
			id = s.freshID(b, cardIDPrefix)
		}
		c, err := b.AddCard(req.ColumnID, id, req.Annotation, now)
		if err != nil || c == nil {
			return false, err
		}
		card = c.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard shallow-merges a patch into a card. Unknown cards are a no-op.
func (s *BoardServiceImpl) UpdateCard(ctx context.Context, req primary.UpdateCardRequest) (bool, error) {
	return s.update(ctx, req.BoardID, func(b *board.Board, now time.Time) (bool, error) {
		return b.UpdateCard(req.CardID, req.Patch, now)
	})
}

// DeleteCard removes a card. Unknown cards are a no-op.
func (s *BoardServiceImpl) DeleteCard(ctx context.Context, boardID, cardID string) (bool, error) {
	return s.update(ctx, boardID, func(b *board.Board, now time.Time) (bool, error) {
		return b.DeleteCard(cardID, now), nil
	})
}

// MoveCard moves a card within or across columns.
func (s *BoardServiceImpl) MoveCard(ctx context.Context, req primary.MoveCardRequest) (bool, error) {
	return s.update(ctx, req.BoardID, func(b *board.Board, now time.Time) (bool, error) {
		from := req.FromColumnID
		if from == "" {
			col, _ := b.ColumnOf(req.CardID)
			if col == nil {
				return false, nil
			}
			from = col.ID
		}
		return ordering.MoveCard(b, req.CardID, from, req.ToColumnID, req.TargetIndex, now), nil
	})
}

// update loads a board, applies fn and persists the result when fn reports a
// change. fn errors and no-ops leave the stored board untouched.
func (s *BoardServiceImpl) update(ctx context.Context, boardID string, fn func(b *board.Board, now time.Time) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.load(ctx, boardID)
	if err != nil {
		return false, err
	}

	changed, err := fn(b, s.now())
	if err != nil || !changed {
		return false, err
	}

	if err := s.save(ctx, b); err != nil {
		return false, err
	}
	return true, nil
}

func (s *BoardServiceImpl) load(ctx context.Context, boardID string) (*board.Board, error) {
	record, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	b, err := board.UnmarshalSnapshot(record.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to decode board %s: %w", boardID, err)
	}
	return b, nil
}

func (s *BoardServiceImpl) save(ctx context.Context, b *board.Board) error {
	data, err := board.MarshalSnapshot(b)
	if err != nil {
		return fmt.Errorf("failed to encode board %s: %w", b.ID, err)
	}
	record := &secondary.BoardRecord{
		ID:        b.ID,
		Title:     b.Title,
		Snapshot:  data,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if err := s.boardRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save board %s: %w", b.ID, err)
	}
	return nil
}

// freshID generates an ID not yet used by any column or card of b.
func (s *BoardServiceImpl) freshID(b *board.Board, prefix string) string {
	for {
		id := s.newID(prefix)
		if col, _ := b.Column(id); col != nil {
			continue
		}
		if _, taken := b.Cards[id]; taken {
			continue
		}
		return id
	}
}
