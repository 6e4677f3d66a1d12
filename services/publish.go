package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"nokanban.pro/database"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives a URL name from a board title: lowercase, special
// characters stripped, whitespace collapsed to single hyphens, capped at 50
// characters. The result is the board's immutable external identifier.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	return strings.Trim(s, "-")
}

// Publish uploads a local board snapshot to the shared-board server as a
// one-shot sequence: create the board record, then each column, then each
// of its cards, preserving position order. Validation failures (short slug,
// malformed PIN) are caught before any network call. The first failed
// upload aborts the rest; there is no partial retry, the caller restarts
// from scratch.
func Publish(ctx context.Context, snap *database.BoardSnapshot, baseURL, pin string) (*RemoteStore, error) {
	name := Slugify(snap.Board.Title)
	if len(name) < 4 {
		return nil, fmt.Errorf("board title %q does not make a usable URL name (need at least 4 characters): %w",
			snap.Board.Title, database.ErrValidation)
	}
	if !ValidPin(pin) {
		return nil, fmt.Errorf("PIN must be 4 digits: %w", database.ErrValidation)
	}

	remote := NewRemoteStore(baseURL, name)
	if _, err := remote.CreateBoard(ctx, snap.Board.Title, pin); err != nil {
		return nil, err
	}
	if err := remote.SetPin(pin); err != nil {
		return nil, err
	}

	for _, col := range snap.Columns {
		created, err := remote.CreateColumnAt(ctx, col.Title, col.Position)
		if err != nil {
			return nil, fmt.Errorf("failed to publish column %q: %w", col.Title, err)
		}
		for _, card := range col.Cards {
			if _, err := remote.CreateCardAt(ctx, created.ID, card.Content, card.Position); err != nil {
				return nil, fmt.Errorf("failed to publish card in %q: %w", col.Title, err)
			}
		}
	}

	return remote, nil
}
