package services

import (
	"context"
	"errors"
	"fmt"

	"nokanban.pro/database"
)

// The singleton local board. Every offline session works against this one
// record; "new board" replaces it wholesale.
const (
	LocalBoardID      = "home-board"
	localBoardName    = "home"
	DefaultBoardTitle = "My Kanban Board"
)

var (
	defaultColumns = []string{"To-do", "In Progress", "Done"}
	defaultCards   = []string{"Task 1", "Task 2", "Task 3"}
)

// LocalStore implements Store against the embedded sqlite repository,
// bound to the singleton local board. It also owns the local-only flows:
// first-run bootstrap, export/import, and the recreate ("new board") cycle.
type LocalStore struct {
	repo    *database.Repository
	boardID string
}

// OpenLocal binds the repository to the local board, creating it with the
// default three columns and placeholder cards if it does not exist yet.
func OpenLocal(ctx context.Context, repo *database.Repository) (*LocalStore, error) {
	s := &LocalStore{repo: repo, boardID: LocalBoardID}
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LocalStore) bootstrap(ctx context.Context) error {
	_, err := s.repo.GetBoard(ctx, s.boardID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	if _, err := s.repo.CreateBoard(ctx, s.boardID, localBoardName, DefaultBoardTitle, ""); err != nil {
		return fmt.Errorf("failed to bootstrap board: %w", err)
	}
	for _, title := range defaultColumns {
		col, err := s.repo.CreateColumn(ctx, s.boardID, title, -1)
		if err != nil {
			return fmt.Errorf("failed to bootstrap column %q: %w", title, err)
		}
		for _, content := range defaultCards {
			if _, err := s.repo.CreateCard(ctx, col.ID, content, -1); err != nil {
				return fmt.Errorf("failed to bootstrap card: %w", err)
			}
		}
	}
	return nil
}

// BoardID returns the id of the bound board.
func (s *LocalStore) BoardID() string { return s.boardID }

func (s *LocalStore) Load(ctx context.Context) (*database.BoardSnapshot, error) {
	return s.repo.Snapshot(ctx, s.boardID)
}

// UpdateBoardTitle is local-only: shared boards keep the title they were
// published with.
func (s *LocalStore) UpdateBoardTitle(ctx context.Context, title string) error {
	return s.repo.UpdateBoardTitle(ctx, s.boardID, title)
}

func (s *LocalStore) CreateColumn(ctx context.Context, title string) (*database.Column, error) {
	return s.repo.CreateColumn(ctx, s.boardID, title, -1)
}

func (s *LocalStore) UpdateColumnTitle(ctx context.Context, columnID, title string) error {
	return s.repo.UpdateColumnTitle(ctx, columnID, title)
}

func (s *LocalStore) DeleteColumn(ctx context.Context, columnID string) error {
	return s.repo.DeleteColumn(ctx, columnID)
}

func (s *LocalStore) ReorderColumns(ctx context.Context, updates []database.PositionUpdate) error {
	return s.repo.ReorderColumns(ctx, s.boardID, updates)
}

func (s *LocalStore) CreateCard(ctx context.Context, columnID, content string) (*database.Card, error) {
	return s.repo.CreateCard(ctx, columnID, content, -1)
}

func (s *LocalStore) UpdateCardContent(ctx context.Context, cardID, content string) error {
	return s.repo.UpdateCardContent(ctx, cardID, content)
}

func (s *LocalStore) DeleteCard(ctx context.Context, cardID string) error {
	return s.repo.DeleteCard(ctx, cardID)
}

func (s *LocalStore) ReorderCards(ctx context.Context, updates []database.PositionUpdate) error {
	return s.repo.ReorderCards(ctx, s.boardID, updates)
}

func (s *LocalStore) MoveCard(ctx context.Context, cardID, targetColumnID string, position int) error {
	return s.repo.MoveCard(ctx, cardID, targetColumnID, position)
}

// Recreate backs the current board up as an export snapshot, deletes it
// (cards, then columns, then the board), and bootstraps a fresh default
// board. The export string is returned so the caller can save it.
func (s *LocalStore) Recreate(ctx context.Context) (string, error) {
	exported, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := s.repo.DeleteBoard(ctx, s.boardID); err != nil {
		return "", err
	}
	if err := s.bootstrap(ctx); err != nil {
		return "", err
	}
	return exported, nil
}

var _ Store = (*LocalStore)(nil)
