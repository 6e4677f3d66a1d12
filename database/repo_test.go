package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Repository{db: db}
}

func seedBoard(t *testing.T, r *Repository) *Board {
	t.Helper()
	board, err := r.CreateBoard(context.Background(), "", "test-board", "Test Board", "")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	return board
}

func columnPositions(t *testing.T, r *Repository, boardID string) []int {
	t.Helper()
	snap, err := r.Snapshot(context.Background(), boardID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	positions := make([]int, len(snap.Columns))
	for i, col := range snap.Columns {
		positions[i] = col.Position
	}
	return positions
}

func cardPositions(t *testing.T, r *Repository, boardID, columnID string) []int {
	t.Helper()
	snap, err := r.Snapshot(context.Background(), boardID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for _, col := range snap.Columns {
		if col.ID == columnID {
			positions := make([]int, len(col.Cards))
			for i, card := range col.Cards {
				positions[i] = card.Position
			}
			return positions
		}
	}
	t.Fatalf("column %s not in snapshot", columnID)
	return nil
}

func wantContiguous(t *testing.T, positions []int) {
	t.Helper()
	for i, p := range positions {
		if p != i {
			t.Fatalf("positions not contiguous: %v", positions)
		}
	}
}

func TestCreateColumn_Appends(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	for i, title := range []string{"To-do", "In Progress", "Done"} {
		col, err := r.CreateColumn(ctx, board.ID, title, -1)
		if err != nil {
			t.Fatalf("CreateColumn: %v", err)
		}
		if col.Position != i {
			t.Fatalf("column %q position = %d, want %d", title, col.Position, i)
		}
	}
	wantContiguous(t, columnPositions(t, r, board.ID))
}

func TestCreateColumn_InsertShiftsSiblings(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	first, _ := r.CreateColumn(ctx, board.ID, "First", -1)
	second, _ := r.CreateColumn(ctx, board.ID, "Second", -1)

	middle, err := r.CreateColumn(ctx, board.ID, "Middle", 1)
	if err != nil {
		t.Fatalf("CreateColumn: %v", err)
	}
	if middle.Position != 1 {
		t.Fatalf("inserted position = %d, want 1", middle.Position)
	}

	snap, err := r.Snapshot(ctx, board.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	got := []string{snap.Columns[0].ID, snap.Columns[1].ID, snap.Columns[2].ID}
	want := []string{first.ID, middle.ID, second.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order at %d: got %s, want %s", i, got[i], want[i])
		}
	}
	wantContiguous(t, columnPositions(t, r, board.ID))
}

func TestDeleteColumn_CascadesAndCompacts(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	var cols []*Column
	for _, title := range []string{"A", "B", "C"} {
		col, _ := r.CreateColumn(ctx, board.ID, title, -1)
		cols = append(cols, col)
	}
	for i := 0; i < 4; i++ {
		if _, err := r.CreateCard(ctx, cols[1].ID, "card", -1); err != nil {
			t.Fatalf("CreateCard: %v", err)
		}
	}

	if err := r.DeleteColumn(ctx, cols[1].ID); err != nil {
		t.Fatalf("DeleteColumn: %v", err)
	}

	snap, err := r.Snapshot(ctx, board.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.Columns) != 2 {
		t.Fatalf("columns left = %d, want 2", len(snap.Columns))
	}
	if snap.Columns[0].ID != cols[0].ID || snap.Columns[1].ID != cols[2].ID {
		t.Fatalf("wrong survivors: %s, %s", snap.Columns[0].Title, snap.Columns[1].Title)
	}
	wantContiguous(t, columnPositions(t, r, board.ID))

	// the deleted column's cards must be gone
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cards WHERE column_id = ?", cols[1].ID).Scan(&count); err != nil {
		t.Fatalf("count cards: %v", err)
	}
	if count != 0 {
		t.Fatalf("orphaned cards left: %d", count)
	}
}

func TestDeleteCard_Compacts(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	col, _ := r.CreateColumn(ctx, board.ID, "Col", -1)
	var cards []*Card
	for i := 0; i < 3; i++ {
		card, _ := r.CreateCard(ctx, col.ID, "card", -1)
		cards = append(cards, card)
	}

	if err := r.DeleteCard(ctx, cards[0].ID); err != nil {
		t.Fatalf("DeleteCard: %v", err)
	}
	wantContiguous(t, cardPositions(t, r, board.ID, col.ID))
}

func TestMoveCard_CrossColumn(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	src, _ := r.CreateColumn(ctx, board.ID, "Src", -1)
	dst, _ := r.CreateColumn(ctx, board.ID, "Dst", -1)

	var srcCards, dstCards []*Card
	for i := 0; i < 3; i++ {
		card, _ := r.CreateCard(ctx, src.ID, "s", -1)
		srcCards = append(srcCards, card)
	}
	for i := 0; i < 2; i++ {
		card, _ := r.CreateCard(ctx, dst.ID, "d", -1)
		dstCards = append(dstCards, card)
	}

	// move the middle source card between the two destination cards
	if err := r.MoveCard(ctx, srcCards[1].ID, dst.ID, 1); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}

	wantContiguous(t, cardPositions(t, r, board.ID, src.ID))
	wantContiguous(t, cardPositions(t, r, board.ID, dst.ID))

	snap, _ := r.Snapshot(ctx, board.ID)
	for _, col := range snap.Columns {
		if col.ID != dst.ID {
			continue
		}
		got := []string{col.Cards[0].ID, col.Cards[1].ID, col.Cards[2].ID}
		want := []string{dstCards[0].ID, srcCards[1].ID, dstCards[1].ID}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("destination order at %d: got %s, want %s", i, got[i], want[i])
			}
		}
	}
}

func TestMoveCard_SameColumn(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	col, _ := r.CreateColumn(ctx, board.ID, "Col", -1)
	var cards []*Card
	for _, content := range []string{"a", "b", "c"} {
		card, _ := r.CreateCard(ctx, col.ID, content, -1)
		cards = append(cards, card)
	}

	// drag the first card to the end
	if err := r.MoveCard(ctx, cards[0].ID, col.ID, 2); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}

	snap, _ := r.Snapshot(ctx, board.ID)
	got := snap.Columns[0].Cards
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i].Content != want[i] {
			t.Fatalf("order: got %q at %d, want %q", got[i].Content, i, want[i])
		}
	}
	wantContiguous(t, cardPositions(t, r, board.ID, col.ID))
}

func TestMoveCard_ClampsPosition(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	src, _ := r.CreateColumn(ctx, board.ID, "Src", -1)
	dst, _ := r.CreateColumn(ctx, board.ID, "Dst", -1)
	card, _ := r.CreateCard(ctx, src.ID, "x", -1)
	r.CreateCard(ctx, dst.ID, "y", -1)

	if err := r.MoveCard(ctx, card.ID, dst.ID, 99); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}
	positions := cardPositions(t, r, board.ID, dst.ID)
	if len(positions) != 2 {
		t.Fatalf("destination card count = %d, want 2", len(positions))
	}
	wantContiguous(t, positions)
}

func TestReorder_UnknownIDRollsBack(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	a, _ := r.CreateColumn(ctx, board.ID, "A", -1)
	b, _ := r.CreateColumn(ctx, board.ID, "B", -1)

	err := r.ReorderColumns(ctx, board.ID, []PositionUpdate{
		{ID: a.ID, Position: 1},
		{ID: "no-such-column", Position: 0},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// the batch must not have partially applied
	snap, _ := r.Snapshot(ctx, board.ID)
	if snap.Columns[0].ID != a.ID || snap.Columns[1].ID != b.ID {
		t.Fatalf("partial reorder applied: %v", columnPositions(t, r, board.ID))
	}
}

func TestReorder_ScopedToBoard(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	other, err := r.CreateBoard(ctx, "", "other-board", "Other", "")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	foreign, _ := r.CreateColumn(ctx, other.ID, "Foreign", -1)

	err = r.ReorderColumns(ctx, board.ID, []PositionUpdate{{ID: foreign.ID, Position: 5}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-board reorder: err = %v, want ErrNotFound", err)
	}
}

func TestCreateBoard_NameConflict(t *testing.T) {
	r := newTestRepo(t)
	seedBoard(t, r)

	_, err := r.CreateBoard(context.Background(), "", "test-board", "Another", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUpdates_EmptyTextIgnored(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	col, _ := r.CreateColumn(ctx, board.ID, "Keep", -1)
	card, _ := r.CreateCard(ctx, col.ID, "keep", -1)

	if err := r.UpdateColumnTitle(ctx, col.ID, "   "); err != nil {
		t.Fatalf("UpdateColumnTitle: %v", err)
	}
	if err := r.UpdateCardContent(ctx, card.ID, ""); err != nil {
		t.Fatalf("UpdateCardContent: %v", err)
	}

	snap, _ := r.Snapshot(ctx, board.ID)
	if snap.Columns[0].Title != "Keep" || snap.Columns[0].Cards[0].Content != "keep" {
		t.Fatalf("empty update was applied: %+v", snap.Columns[0])
	}
}

func TestCreate_EmptyTextRejected(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	if _, err := r.CreateColumn(ctx, board.ID, "  ", -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty column: err = %v, want ErrValidation", err)
	}
	col, _ := r.CreateColumn(ctx, board.ID, "Col", -1)
	if _, err := r.CreateCard(ctx, col.ID, "\t", -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty card: err = %v, want ErrValidation", err)
	}
}

func TestMutationsTouchBoard(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	col, _ := r.CreateColumn(ctx, board.ID, "Col", -1)

	// backdate the board, then mutate
	old := time.Now().UTC().AddDate(0, 0, -20)
	if _, err := r.db.Exec("UPDATE boards SET updated_at = ? WHERE id = ?", old, board.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if _, err := r.CreateCard(ctx, col.ID, "new card", -1); err != nil {
		t.Fatalf("CreateCard: %v", err)
	}

	refreshed, err := r.GetBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if !refreshed.UpdatedAt.After(old.Add(time.Hour)) {
		t.Fatalf("updated_at not refreshed: %v", refreshed.UpdatedAt)
	}
}

func TestDeleteInactive(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	stale, _ := r.CreateBoard(ctx, "", "stale-board", "Stale", "")
	fresh, _ := r.CreateBoard(ctx, "", "fresh-board", "Fresh", "")
	col, _ := r.CreateColumn(ctx, stale.ID, "Col", -1)
	r.CreateCard(ctx, col.ID, "card", -1)

	old := time.Now().UTC().AddDate(0, 0, -20)
	if _, err := r.db.Exec("UPDATE boards SET updated_at = ? WHERE id = ?", old, stale.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	count, err := r.DeleteInactive(ctx, 15)
	if err != nil {
		t.Fatalf("DeleteInactive: %v", err)
	}
	if count != 1 {
		t.Fatalf("swept %d boards, want 1", count)
	}
	if _, err := r.GetBoard(ctx, stale.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale board still there: %v", err)
	}
	if _, err := r.GetBoard(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh board swept: %v", err)
	}

	// cascade must have removed the stale board's rows
	var cards int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cards); err != nil {
		t.Fatalf("count cards: %v", err)
	}
	if cards != 0 {
		t.Fatalf("orphaned cards left: %d", cards)
	}
}

func TestDeleteBoard_ChildrenFirst(t *testing.T) {
	r := newTestRepo(t)
	board := seedBoard(t, r)
	ctx := context.Background()

	col, _ := r.CreateColumn(ctx, board.ID, "Col", -1)
	r.CreateCard(ctx, col.ID, "card", -1)

	if err := r.DeleteBoard(ctx, board.ID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}

	var rows int
	for _, table := range []string{"boards", "columns", "cards"} {
		if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&rows); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if rows != 0 {
			t.Fatalf("%s not empty after DeleteBoard: %d", table, rows)
		}
	}
}
