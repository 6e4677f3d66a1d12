package services

import (
	"context"
	"fmt"
	"strings"

	"nokanban.pro/database"
)

// BoardService is the backend-agnostic intent layer: it trims and validates
// input, forwards intents to whichever Store it was built with, and
// refetches the full board snapshot after every mutation. Board sizes are
// small, so wholesale refresh beats fine-grained patching.
//
// Intents are not internally serialized; callers are expected to let each
// one finish before issuing the next, the way a single drag gesture does.
type BoardService struct {
	store    Store
	snapshot *database.BoardSnapshot
}

func NewBoardService(store Store) *BoardService {
	return &BoardService{store: store}
}

// Load fetches and caches the board snapshot.
func (s *BoardService) Load(ctx context.Context) (*database.BoardSnapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot = snap
	return snap, nil
}

// Snapshot returns the last loaded snapshot, or nil before the first Load.
func (s *BoardService) Snapshot() *database.BoardSnapshot { return s.snapshot }

func (s *BoardService) refresh(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}

// CreateColumn appends a column. An empty title after trimming is dropped
// silently.
func (s *BoardService) CreateColumn(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if _, err := s.store.CreateColumn(ctx, title); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) UpdateColumnTitle(ctx context.Context, columnID, title string) error {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	if err := s.store.UpdateColumnTitle(ctx, columnID, title); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) DeleteColumn(ctx context.Context, columnID string) error {
	if err := s.store.DeleteColumn(ctx, columnID); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) ReorderColumns(ctx context.Context, updates []database.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.store.ReorderColumns(ctx, updates); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// CreateCard appends a card. Empty content after trimming is dropped
// silently.
func (s *BoardService) CreateCard(ctx context.Context, columnID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if _, err := s.store.CreateCard(ctx, columnID, content); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) UpdateCardContent(ctx context.Context, cardID, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if err := s.store.UpdateCardContent(ctx, cardID, content); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) DeleteCard(ctx context.Context, cardID string) error {
	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) ReorderCards(ctx context.Context, updates []database.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.store.ReorderCards(ctx, updates); err != nil {
		return err
	}
	return s.refresh(ctx)
}

func (s *BoardService) MoveCard(ctx context.Context, cardID, targetColumnID string, position int) error {
	if err := s.store.MoveCard(ctx, cardID, targetColumnID, position); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// DropCard resolves a card drag gesture against the current snapshot and
// applies it: a same-column drop becomes a reorder batch, a cross-column
// drop becomes a move.
func (s *BoardService) DropCard(ctx context.Context, g DropGesture) error {
	if s.snapshot == nil {
		if err := s.refresh(ctx); err != nil {
			return err
		}
	}

	source, ok := s.cardIDs(g.SourceParentID)
	if !ok {
		return fmt.Errorf("column %s: %w", g.SourceParentID, database.ErrNotFound)
	}
	target, ok := s.cardIDs(g.TargetParentID)
	if !ok {
		return fmt.Errorf("column %s: %w", g.TargetParentID, database.ErrNotFound)
	}

	res := ResolveDrop(g, source, target)
	if res.SameParent {
		return s.ReorderCards(ctx, res.Updates)
	}
	return s.MoveCard(ctx, g.DraggedID, g.TargetParentID, res.Position)
}

// DropColumn resolves a column drag gesture. Columns only ever reorder
// within their board.
func (s *BoardService) DropColumn(ctx context.Context, g DropGesture) error {
	if s.snapshot == nil {
		if err := s.refresh(ctx); err != nil {
			return err
		}
	}

	ids := make([]string, 0, len(s.snapshot.Columns))
	for _, col := range s.snapshot.Columns {
		ids = append(ids, col.ID)
	}

	g.SourceParentID = s.snapshot.Board.ID
	g.TargetParentID = s.snapshot.Board.ID
	res := ResolveDrop(g, ids, ids)
	return s.ReorderColumns(ctx, res.Updates)
}

func (s *BoardService) cardIDs(columnID string) ([]string, bool) {
	for _, col := range s.snapshot.Columns {
		if col.ID == columnID {
			ids := make([]string, 0, len(col.Cards))
			for _, card := range col.Cards {
				ids = append(ids, card.ID)
			}
			return ids, true
		}
	}
	return nil, false
}
