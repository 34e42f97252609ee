package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.BoardRepository = (*mockBoardRepository)(nil)
	_ secondary.PaperCatalog    = (*mockPaperCatalog)(nil)
)

// mockBoardRepository implements secondary.BoardRepository for testing.
type mockBoardRepository struct {
	boards    map[string]*secondary.BoardRecord
	saves     int
	saveErr   error
	getErr    error
	listErr   error
	deleteErr error
}

func newMockBoardRepository() *mockBoardRepository {
	return &mockBoardRepository{
		boards: make(map[string]*secondary.BoardRecord),
	}
}

func (m *mockBoardRepository) Save(ctx context.Context, record *secondary.BoardRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	cp := *record
	cp.Snapshot = append([]byte(nil), record.Snapshot...)
	m.boards[record.ID] = &cp
	return nil
}

func (m *mockBoardRepository) GetByID(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	record, ok := m.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
	}
	cp := *record
	return &cp, nil
}

func (m *mockBoardRepository) List(ctx context.Context) ([]*secondary.BoardRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.BoardRecord
	for _, r := range m.boards {
		cp := *r
		result = append(result, &cp)
	}
	return result, nil
}

func (m *mockBoardRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.boards[id]; !ok {
		return fmt.Errorf("board %s: %w", id, board.ErrBoardNotFound)
	}
	delete(m.boards, id)
	return nil
}

// mockPaperCatalog implements secondary.PaperCatalog for testing.
type mockPaperCatalog struct {
	papers  []*secondary.PaperRecord
	listErr error
}

func (m *mockPaperCatalog) ListPapers(ctx context.Context) ([]*secondary.PaperRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.papers, nil
}

func (m *mockPaperCatalog) GetPaper(ctx context.Context, id string) (*secondary.PaperRecord, error) {
	for _, p := range m.papers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, secondary.ErrPaperNotFound)
}

// ============================================================================
// Test Helpers
// ============================================================================

// newTestBoardService returns a service with a deterministic clock and IDs.
func newTestBoardService() (*BoardServiceImpl, *mockBoardRepository, *test.Hook) {
	repo := newMockBoardRepository()
	logger, hook := test.NewNullLogger()
	service := NewBoardService(repo, logger)

	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	seq := 0
	service.newID = func(prefix string) string {
		seq++
		return fmt.Sprintf("%s%03d", prefix, seq)
	}
	return service, repo, hook
}
