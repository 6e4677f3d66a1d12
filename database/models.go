package database

import "time"

// Board is the top-level kanban container. Name is a URL slug, unique and
// immutable after creation; Title is the editable display name.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Column is an ordered list of cards within a board. Position is zero-based
// and contiguous within the owning board.
type Column struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Card is a single task. Position is zero-based and contiguous within the
// owning column.
type Card struct {
	ID        string    `json:"id"`
	ColumnID  string    `json:"columnId"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColumnSnapshot is a column with its cards, ordered by position.
type ColumnSnapshot struct {
	Column
	Cards []Card `json:"cards"`
}

// BoardSnapshot is the full nested board shape both backends return and
// every consumer reads. It is refetched wholesale after each mutation.
type BoardSnapshot struct {
	Board   Board            `json:"board"`
	Columns []ColumnSnapshot `json:"columns"`
}

// PositionUpdate is one entry of a reorder batch.
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}
