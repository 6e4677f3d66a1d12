package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"nokanban.pro/database"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My Kanban Board", "my-kanban-board"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Sprint #42: The Reckoning!", "sprint-42-the-reckoning"},
		{"---dashes---", "dashes"},
		{"UPPER", "upper"},
		{strings.Repeat("long ", 30), strings.Repeat("long-", 9) + "long"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func publishSnapshot() *database.BoardSnapshot {
	return &database.BoardSnapshot{
		Board: database.Board{ID: "home-board", Name: "home", Title: "Team Board"},
		Columns: []database.ColumnSnapshot{
			{
				Column: database.Column{ID: "c1", Title: "To-do", Position: 0},
				Cards: []database.Card{
					{ID: "k1", Content: "first", Position: 0},
					{ID: "k2", Content: "second", Position: 1},
				},
			},
			{
				Column: database.Column{ID: "c2", Title: "Done", Position: 1},
				Cards: []database.Card{
					{ID: "k3", Content: "third", Position: 0},
				},
			},
		},
	}
}

func TestPublish_ShortTitleFailsBeforeAnyRequest(t *testing.T) {
	var mu sync.Mutex
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
	}))
	defer server.Close()

	snap := publishSnapshot()
	snap.Board.Title = "abc"

	_, err := Publish(context.Background(), snap, server.URL, "1234")
	if !errors.Is(err, database.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if requests != 0 {
		t.Fatalf("%d requests made, want 0", requests)
	}
}

func TestPublish_BadPinFailsBeforeAnyRequest(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	_, err := Publish(context.Background(), publishSnapshot(), server.URL, "12ab")
	if !errors.Is(err, database.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if requests != 0 {
		t.Fatalf("%d requests made, want 0", requests)
	}
}

func TestPublish_UploadsBoardThenColumnsThenCards(t *testing.T) {
	var mu sync.Mutex
	var trail []string
	var nextColumn int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		switch {
		case r.URL.Path == "/api/v1/boards":
			trail = append(trail, "board")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Board{Name: "team-board"})
		case strings.HasSuffix(r.URL.Path, "/cards"):
			var body struct {
				Content  string `json:"content"`
				Position int    `json:"position"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			trail = append(trail, fmt.Sprintf("card:%s@%d", body.Content, body.Position))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Card{ID: "rk"})
		case strings.HasSuffix(r.URL.Path, "/columns"):
			if r.Header.Get(PinHeader) != "1234" {
				t.Errorf("column upload missing PIN header")
			}
			var body struct {
				Title    string `json:"title"`
				Position int    `json:"position"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			trail = append(trail, fmt.Sprintf("column:%s@%d", body.Title, body.Position))
			nextColumn++
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Column{ID: fmt.Sprintf("rc%d", nextColumn)})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	remote, err := Publish(context.Background(), publishSnapshot(), server.URL, "1234")
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if remote.BoardName() != "team-board" {
		t.Fatalf("board name = %q", remote.BoardName())
	}

	want := []string{
		"board",
		"column:To-do@0",
		"card:first@0",
		"card:second@1",
		"column:Done@1",
		"card:third@0",
	}
	if len(trail) != len(want) {
		t.Fatalf("trail = %v, want %v", trail, want)
	}
	for i := range want {
		if trail[i] != want[i] {
			t.Fatalf("trail[%d] = %q, want %q", i, trail[i], want[i])
		}
	}
}

func TestPublish_SlugConflictSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	_, err := Publish(context.Background(), publishSnapshot(), server.URL, "1234")
	if !errors.Is(err, database.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestPublish_AbortsOnFirstFailure(t *testing.T) {
	var mu sync.Mutex
	var requests, columns int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		requests++

		switch {
		case r.URL.Path == "/api/v1/boards":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Board{Name: "team-board"})
		case strings.HasSuffix(r.URL.Path, "/columns"):
			columns++
			if columns == 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Column{ID: "rc1"})
		default:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(database.Card{ID: "rk"})
		}
	}))
	defer server.Close()

	_, err := Publish(context.Background(), publishSnapshot(), server.URL, "1234")
	if !errors.Is(err, database.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	// board + column 1 + its two cards + failing column 2, nothing after
	if requests != 5 {
		t.Fatalf("requests = %d, want 5 (upload must stop at the failure)", requests)
	}
}
