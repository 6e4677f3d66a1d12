package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nokanban.pro/database"
)

// PinHeader carries the 4-digit PIN on every mutating shared-board request.
const PinHeader = "X-Board-Pin"

// RemoteStore implements Store against the shared-board HTTP API. It is
// bound to one board slug and holds that board's PIN for the lifetime of
// the session only; the PIN is never persisted. Mutating calls made before
// SetPin fail locally with ErrUnauthorized and never reach the wire.
type RemoteStore struct {
	baseURL   string
	boardName string
	pin       string
	client    *http.Client
}

// NewRemoteStore binds a client to the board slug on the given API server.
func NewRemoteStore(baseURL, boardName string) *RemoteStore {
	return &RemoteStore{
		baseURL:   strings.TrimRight(baseURL, "/"),
		boardName: boardName,
		client:    &http.Client{},
	}
}

// BoardName returns the bound board slug.
func (s *RemoteStore) BoardName() string { return s.boardName }

// SetPin stores the PIN for this session. The PIN must be exactly four
// ASCII digits.
func (s *RemoteStore) SetPin(pin string) error {
	if !ValidPin(pin) {
		return fmt.Errorf("PIN must be 4 digits: %w", database.ErrValidation)
	}
	s.pin = pin
	return nil
}

// IsPinSet reports whether a PIN has been supplied. Consumers treat the
// board as read-only until it is.
func (s *RemoteStore) IsPinSet() bool { return s.pin != "" }

// ValidPin reports whether pin is exactly four ASCII digits.
func ValidPin(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CreateBoard registers the board slug on the server. The PIN travels in
// the body here, not the header: this is the one call that establishes it.
func (s *RemoteStore) CreateBoard(ctx context.Context, title, pin string) (*database.Board, error) {
	if !ValidPin(pin) {
		return nil, fmt.Errorf("PIN must be 4 digits: %w", database.ErrValidation)
	}
	body := map[string]string{"name": s.boardName, "title": title, "pin": pin}
	var board database.Board
	if err := s.do(ctx, http.MethodPost, "/api/v1/boards", body, &board, false); err != nil {
		return nil, err
	}
	return &board, nil
}

// DeleteBoard removes the shared board and everything on it.
func (s *RemoteStore) DeleteBoard(ctx context.Context) error {
	return s.do(ctx, http.MethodDelete, s.boardPath(""), nil, nil, true)
}

func (s *RemoteStore) Load(ctx context.Context) (*database.BoardSnapshot, error) {
	var snap database.BoardSnapshot
	if err := s.do(ctx, http.MethodGet, s.boardPath(""), nil, &snap, false); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *RemoteStore) CreateColumn(ctx context.Context, title string) (*database.Column, error) {
	return s.CreateColumnAt(ctx, title, -1)
}

// CreateColumnAt inserts a column at an explicit position; the publish flow
// uses it to preserve local ordering.
func (s *RemoteStore) CreateColumnAt(ctx context.Context, title string, position int) (*database.Column, error) {
	body := map[string]any{"title": title, "position": position}
	var col database.Column
	if err := s.do(ctx, http.MethodPost, s.boardPath("/columns"), body, &col, true); err != nil {
		return nil, err
	}
	return &col, nil
}

func (s *RemoteStore) UpdateColumnTitle(ctx context.Context, columnID, title string) error {
	body := map[string]string{"title": title}
	return s.do(ctx, http.MethodPatch, s.boardPath("/columns/"+columnID), body, nil, true)
}

func (s *RemoteStore) DeleteColumn(ctx context.Context, columnID string) error {
	return s.do(ctx, http.MethodDelete, s.boardPath("/columns/"+columnID), nil, nil, true)
}

func (s *RemoteStore) ReorderColumns(ctx context.Context, updates []database.PositionUpdate) error {
	body := map[string]any{"updates": updates}
	return s.do(ctx, http.MethodPatch, s.boardPath("/columns/reorder"), body, nil, true)
}

func (s *RemoteStore) CreateCard(ctx context.Context, columnID, content string) (*database.Card, error) {
	return s.CreateCardAt(ctx, columnID, content, -1)
}

// CreateCardAt inserts a card at an explicit position within a column.
func (s *RemoteStore) CreateCardAt(ctx context.Context, columnID, content string, position int) (*database.Card, error) {
	body := map[string]any{"content": content, "position": position}
	var card database.Card
	if err := s.do(ctx, http.MethodPost, s.boardPath("/columns/"+columnID+"/cards"), body, &card, true); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *RemoteStore) UpdateCardContent(ctx context.Context, cardID, content string) error {
	body := map[string]string{"content": content}
	return s.do(ctx, http.MethodPatch, s.boardPath("/cards/"+cardID), body, nil, true)
}

func (s *RemoteStore) DeleteCard(ctx context.Context, cardID string) error {
	return s.do(ctx, http.MethodDelete, s.boardPath("/cards/"+cardID), nil, nil, true)
}

func (s *RemoteStore) ReorderCards(ctx context.Context, updates []database.PositionUpdate) error {
	body := map[string]any{"updates": updates}
	return s.do(ctx, http.MethodPatch, s.boardPath("/cards/reorder"), body, nil, true)
}

func (s *RemoteStore) MoveCard(ctx context.Context, cardID, targetColumnID string, position int) error {
	body := map[string]any{"columnId": targetColumnID, "position": position}
	return s.do(ctx, http.MethodPatch, s.boardPath("/cards/"+cardID+"/move"), body, nil, true)
}

func (s *RemoteStore) boardPath(suffix string) string {
	return "/api/v1/boards/" + s.boardName + suffix
}

// do issues one API request. mutating requests carry the PIN header and are
// refused locally when no PIN is set. HTTP failures collapse into the
// shared error taxonomy; transport failures become ErrUnavailable.
func (s *RemoteStore) do(ctx context.Context, method, path string, body, out any, mutating bool) error {
	if mutating && !s.IsPinSet() {
		return fmt.Errorf("no PIN set for board %q: %w", s.boardName, database.ErrUnauthorized)
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if mutating {
		req.Header.Set(PinHeader, s.pin)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed (%v): %w", path, err, database.ErrUnavailable)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return database.ErrUnauthorized
	case code == http.StatusNotFound:
		return database.ErrNotFound
	case code == http.StatusConflict:
		return database.ErrConflict
	case code == http.StatusBadRequest:
		return database.ErrValidation
	default:
		return database.ErrUnavailable
	}
}

var _ Store = (*RemoteStore)(nil)
