package services

import (
	"context"

	"nokanban.pro/database"
)

// Store is the capability set shared by the local (embedded sqlite) and
// remote (shared-board API) backends. A Store is bound to exactly one board
// at construction time; consumers never mix backends within one session.
type Store interface {
	// Load returns the full nested snapshot of the bound board.
	Load(ctx context.Context) (*database.BoardSnapshot, error)

	// CreateColumn appends a column at the end of the board.
	CreateColumn(ctx context.Context, title string) (*database.Column, error)
	UpdateColumnTitle(ctx context.Context, columnID, title string) error
	DeleteColumn(ctx context.Context, columnID string) error
	ReorderColumns(ctx context.Context, updates []database.PositionUpdate) error

	// CreateCard appends a card at the end of the column.
	CreateCard(ctx context.Context, columnID, content string) (*database.Card, error)
	UpdateCardContent(ctx context.Context, cardID, content string) error
	DeleteCard(ctx context.Context, cardID string) error
	ReorderCards(ctx context.Context, updates []database.PositionUpdate) error

	// MoveCard relocates a card into targetColumnID at position, adjusting
	// both the source and destination orderings in one step.
	MoveCard(ctx context.Context, cardID, targetColumnID string, position int) error
}
