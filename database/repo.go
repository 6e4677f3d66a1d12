package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository implements the ordered entity store over sqlite: boards own
// columns, columns own cards, and sibling positions always form a
// contiguous 0..N-1 permutation. Every mutation runs in one transaction
// and bumps the owning board's updated_at so the inactivity sweep stays
// accurate.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// --- boards ---

// CreateBoard inserts a new board. id may be empty to generate one. name is
// the immutable slug; a collision returns ErrConflict. pinHash is empty for
// local boards.
func (r *Repository) CreateBoard(ctx context.Context, id, name, title, pinHash string) (*Board, error) {
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT id FROM boards WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("board name %q is taken: %w", name, ErrConflict)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO boards (id, name, title, pin_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, title, pinHash, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &Board{ID: id, Name: name, Title: title, CreatedAt: now, UpdatedAt: now}, nil
}

// GetBoard looks a board up by id.
func (r *Repository) GetBoard(ctx context.Context, id string) (*Board, error) {
	return r.scanBoard(r.db.QueryRowContext(ctx,
		"SELECT id, name, title, created_at, updated_at FROM boards WHERE id = ?", id))
}

// GetBoardByName looks a board up by its slug.
func (r *Repository) GetBoardByName(ctx context.Context, name string) (*Board, error) {
	return r.scanBoard(r.db.QueryRowContext(ctx,
		"SELECT id, name, title, created_at, updated_at FROM boards WHERE name = ?", name))
}

// PinHash returns the stored PIN hash for a board slug. Only the shared
// server consults this; local boards carry an empty hash.
func (r *Repository) PinHash(ctx context.Context, name string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, "SELECT pin_hash FROM boards WHERE name = ?", name).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("board %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query pin hash: %w", err)
	}
	return hash, nil
}

// UpdateBoardTitle changes the display title. The slug never changes. An
// empty title after trimming is silently ignored.
func (r *Repository) UpdateBoardTitle(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE boards SET title = ?, updated_at = ? WHERE id = ?",
		title, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update board title: %w", err)
	}
	return requireRow(res, "board "+id)
}

// DeleteBoard removes a board and everything it owns, children first so a
// failure mid-way never leaves orphaned rows pointing at a missing parent.
func (r *Repository) DeleteBoard(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cards WHERE column_id IN (SELECT id FROM columns WHERE board_id = ?)", id); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM columns WHERE board_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete columns: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if err := requireRow(res, "board "+id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteInactive removes every board whose updated_at is older than the
// given number of days, cascading to columns and cards. It returns how many
// boards were swept.
func (r *Repository) DeleteInactive(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE column_id IN (
			SELECT c.id FROM columns c JOIN boards b ON b.id = c.board_id WHERE b.updated_at < ?)`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete cards: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM columns WHERE board_id IN (SELECT id FROM boards WHERE updated_at < ?)", cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete columns: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete boards: %w", err)
	}
	count, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

// Snapshot returns the full nested board shape, columns and cards ordered
// by position.
func (r *Repository) Snapshot(ctx context.Context, boardID string) (*BoardSnapshot, error) {
	board, err := r.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, board_id, title, position, created_at, updated_at
		 FROM columns WHERE board_id = ? ORDER BY position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	snapshot := &BoardSnapshot{Board: *board, Columns: []ColumnSnapshot{}}
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.ID, &col.BoardID, &col.Title, &col.Position, &col.CreatedAt, &col.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		snapshot.Columns = append(snapshot.Columns, ColumnSnapshot{Column: col, Cards: []Card{}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	for i := range snapshot.Columns {
		cards, err := r.columnCards(ctx, snapshot.Columns[i].ID)
		if err != nil {
			return nil, err
		}
		snapshot.Columns[i].Cards = cards
	}

	return snapshot, nil
}

func (r *Repository) columnCards(ctx context.Context, columnID string) ([]Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, column_id, content, position, created_at, updated_at
		 FROM cards WHERE column_id = ? ORDER BY position`, columnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []Card{}
	for rows.Next() {
		var card Card
		if err := rows.Scan(&card.ID, &card.ColumnID, &card.Content, &card.Position, &card.CreatedAt, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

// --- columns ---

// CreateColumn inserts a column. position < 0 appends; otherwise the column
// is inserted at that slot (clamped to the end) and later siblings shift up.
func (r *Repository) CreateColumn(ctx context.Context, boardID, title string, position int) (*Column, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("column title is empty: %w", ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	if err := tx.QueryRowContext(ctx, "SELECT id FROM boards WHERE id = ?", boardID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("board %s: %w", boardID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query board: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns WHERE board_id = ?", boardID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count columns: %w", err)
	}
	if position < 0 || position > count {
		position = count
	}

	now := time.Now().UTC()
	if position < count {
		if _, err := tx.ExecContext(ctx,
			"UPDATE columns SET position = position + 1, updated_at = ? WHERE board_id = ? AND position >= ?",
			now, boardID, position); err != nil {
			return nil, fmt.Errorf("failed to shift columns: %w", err)
		}
	}

	col := &Column{ID: uuid.NewString(), BoardID: boardID, Title: title, Position: position, CreatedAt: now, UpdatedAt: now}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO columns (id, board_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		col.ID, col.BoardID, col.Title, col.Position, col.CreatedAt, col.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert column: %w", err)
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return col, nil
}

// UpdateColumnTitle renames a column. An empty title after trimming is
// silently ignored.
func (r *Repository) UpdateColumnTitle(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var boardID string
	if err := tx.QueryRowContext(ctx, "SELECT board_id FROM columns WHERE id = ?", id).Scan(&boardID); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("column %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to query column: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE columns SET title = ?, updated_at = ? WHERE id = ?", title, now, id); err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}
	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteColumn removes a column and its cards, then compacts the surviving
// siblings so positions stay contiguous.
func (r *Repository) DeleteColumn(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardID string
	var position int
	err = tx.QueryRowContext(ctx, "SELECT board_id, position FROM columns WHERE id = ?", id).Scan(&boardID, &position)
	if err == sql.ErrNoRows {
		return fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query column: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE column_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete cards: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM columns WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE columns SET position = position - 1, updated_at = ? WHERE board_id = ? AND position > ?",
		now, boardID, position); err != nil {
		return fmt.Errorf("failed to compact columns: %w", err)
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReorderColumns applies a batch of column position assignments atomically.
// Any unknown id rolls the whole batch back.
func (r *Repository) ReorderColumns(ctx context.Context, boardID string, updates []PositionUpdate) error {
	return r.reorder(ctx, boardID, "columns", updates)
}

// --- cards ---

// CreateCard inserts a card into a column. position < 0 appends.
func (r *Repository) CreateCard(ctx context.Context, columnID, content string, position int) (*Card, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("card content is empty: %w", ErrValidation)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardID string
	err = tx.QueryRowContext(ctx, "SELECT board_id FROM columns WHERE id = ?", columnID).Scan(&boardID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("column %s: %w", columnID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query column: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE column_id = ?", columnID).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	if position < 0 || position > count {
		position = count
	}

	now := time.Now().UTC()
	if position < count {
		if _, err := tx.ExecContext(ctx,
			"UPDATE cards SET position = position + 1, updated_at = ? WHERE column_id = ? AND position >= ?",
			now, columnID, position); err != nil {
			return nil, fmt.Errorf("failed to shift cards: %w", err)
		}
	}

	card := &Card{ID: uuid.NewString(), ColumnID: columnID, Content: content, Position: position, CreatedAt: now, UpdatedAt: now}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO cards (id, column_id, content, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		card.ID, card.ColumnID, card.Content, card.Position, card.CreatedAt, card.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert card: %w", err)
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return card, nil
}

// UpdateCardContent rewrites a card's text. An empty value after trimming is
// silently ignored.
func (r *Repository) UpdateCardContent(ctx context.Context, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardID string
	err = tx.QueryRowContext(ctx,
		"SELECT c.board_id FROM cards k JOIN columns c ON c.id = k.column_id WHERE k.id = ?", id).Scan(&boardID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query card: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE cards SET content = ?, updated_at = ? WHERE id = ?", content, now, id); err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteCard removes a card and closes the gap it leaves.
func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var columnID, boardID string
	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT k.column_id, k.position, c.board_id
		 FROM cards k JOIN columns c ON c.id = k.column_id WHERE k.id = ?`, id).
		Scan(&columnID, &position, &boardID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query card: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE cards SET position = position - 1, updated_at = ? WHERE column_id = ? AND position > ?",
		now, columnID, position); err != nil {
		return fmt.Errorf("failed to compact cards: %w", err)
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReorderCards applies a batch of card position assignments atomically.
func (r *Repository) ReorderCards(ctx context.Context, boardID string, updates []PositionUpdate) error {
	return r.reorder(ctx, boardID, "cards", updates)
}

// MoveCard relocates a card to a new column and position in one step:
// the source column closes the gap, the destination opens a slot. position
// is clamped into the destination's valid range.
func (r *Repository) MoveCard(ctx context.Context, cardID, targetColumnID string, position int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sourceColumnID, boardID string
	var oldPosition int
	err = tx.QueryRowContext(ctx,
		`SELECT k.column_id, k.position, c.board_id
		 FROM cards k JOIN columns c ON c.id = k.column_id WHERE k.id = ?`, cardID).
		Scan(&sourceColumnID, &oldPosition, &boardID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("card %s: %w", cardID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query card: %w", err)
	}

	var targetBoardID string
	err = tx.QueryRowContext(ctx, "SELECT board_id FROM columns WHERE id = ?", targetColumnID).Scan(&targetBoardID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("column %s: %w", targetColumnID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to query column: %w", err)
	}

	now := time.Now().UTC()
	if sourceColumnID == targetColumnID {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE column_id = ?", sourceColumnID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count cards: %w", err)
		}
		if position < 0 || position > count-1 {
			position = count - 1
		}
		switch {
		case position == oldPosition:
			// nothing to shift
		case position > oldPosition:
			if _, err := tx.ExecContext(ctx,
				"UPDATE cards SET position = position - 1, updated_at = ? WHERE column_id = ? AND position > ? AND position <= ?",
				now, sourceColumnID, oldPosition, position); err != nil {
				return fmt.Errorf("failed to shift cards: %w", err)
			}
		default:
			if _, err := tx.ExecContext(ctx,
				"UPDATE cards SET position = position + 1, updated_at = ? WHERE column_id = ? AND position >= ? AND position < ?",
				now, sourceColumnID, position, oldPosition); err != nil {
				return fmt.Errorf("failed to shift cards: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE cards SET position = ?, updated_at = ? WHERE id = ?", position, now, cardID); err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}
	} else {
		// close the gap in the source column
		if _, err := tx.ExecContext(ctx,
			"UPDATE cards SET position = position - 1, updated_at = ? WHERE column_id = ? AND position > ?",
			now, sourceColumnID, oldPosition); err != nil {
			return fmt.Errorf("failed to compact source column: %w", err)
		}

		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards WHERE column_id = ?", targetColumnID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count cards: %w", err)
		}
		if position < 0 || position > count {
			position = count
		}

		// open a slot in the destination column
		if _, err := tx.ExecContext(ctx,
			"UPDATE cards SET position = position + 1, updated_at = ? WHERE column_id = ? AND position >= ?",
			now, targetColumnID, position); err != nil {
			return fmt.Errorf("failed to shift destination column: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE cards SET column_id = ?, position = ?, updated_at = ? WHERE id = ?",
			targetColumnID, position, now, cardID); err != nil {
			return fmt.Errorf("failed to move card: %w", err)
		}
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// --- helpers ---

func (r *Repository) reorder(ctx context.Context, boardID, table string, updates []PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Updates are scoped to the board so a batch can never renumber
	// entities belonging to someone else's board.
	now := time.Now().UTC()
	query := "UPDATE columns SET position = ?, updated_at = ? WHERE id = ? AND board_id = ?"
	if table == "cards" {
		query = `UPDATE cards SET position = ?, updated_at = ? WHERE id = ?
			AND column_id IN (SELECT id FROM columns WHERE board_id = ?)`
	}
	for _, u := range updates {
		res, err := tx.ExecContext(ctx, query, u.Position, now, u.ID, boardID)
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
		if err := requireRow(res, table+" "+u.ID); err != nil {
			return err
		}
	}

	if err := touchBoard(ctx, tx, boardID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) scanBoard(row *sql.Row) (*Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.Title, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("board: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan board: %w", err)
	}
	return &b, nil
}

func touchBoard(ctx context.Context, tx *sql.Tx, boardID string, now time.Time) error {
	if _, err := tx.ExecContext(ctx, "UPDATE boards SET updated_at = ? WHERE id = ?", now, boardID); err != nil {
		return fmt.Errorf("failed to touch board: %w", err)
	}
	return nil
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
