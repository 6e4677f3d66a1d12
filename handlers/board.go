package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nokanban.pro/database"
	"nokanban.pro/services"
)

// BoardHandler serves the shared-board API. Reads are public; every
// mutating route sits behind PinAuth.
type BoardHandler struct {
	repo *database.Repository
}

func NewBoardHandler(repo *database.Repository) *BoardHandler {
	return &BoardHandler{repo: repo}
}

// Health reports liveness.
func (h *BoardHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateBoard registers a new shared board. The name is the immutable slug
// the board lives under; the PIN is stored hashed.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Pin   string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if len(req.Name) < 4 || services.Slugify(req.Name) != req.Name {
		respondError(w, http.StatusBadRequest, "Board name must be a URL slug of at least 4 characters")
		return
	}
	if !services.ValidPin(req.Pin) {
		respondError(w, http.StatusBadRequest, "PIN must be 4 digits")
		return
	}
	if req.Title == "" {
		req.Title = req.Name
	}

	board, err := h.repo.CreateBoard(r.Context(), "", req.Name, req.Title, HashPin(req.Pin))
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, board)
}

// GetBoard returns the full nested snapshot. No PIN required: shared boards
// are publicly readable.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.repo.GetBoardByName(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.repo.Snapshot(r.Context(), board.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// DeleteBoard removes a board and everything on it.
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	board, ok := boardFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Board not resolved")
		return
	}
	if err := h.repo.DeleteBoard(r.Context(), board.ID); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateColumn inserts a column; a missing or negative position appends.
func (h *BoardHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	board, ok := boardFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Board not resolved")
		return
	}

	var req struct {
		Title    string `json:"title"`
		Position *int   `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	col, err := h.repo.CreateColumn(r.Context(), board.ID, req.Title, position)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, col)
}

// UpdateColumn renames a column.
func (h *BoardHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.repo.UpdateColumnTitle(r.Context(), mux.Vars(r)["id"], req.Title); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteColumn removes a column and its cards and compacts the siblings.
func (h *BoardHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteColumn(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ReorderColumns applies a position batch to the board's columns.
func (h *BoardHandler) ReorderColumns(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, "columns")
}

// CreateCard inserts a card into a column; a missing or negative position
// appends.
func (h *BoardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string `json:"content"`
		Position *int   `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	card, err := h.repo.CreateCard(r.Context(), mux.Vars(r)["id"], req.Content, position)
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// UpdateCard rewrites a card's content.
func (h *BoardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.repo.UpdateCardContent(r.Context(), mux.Vars(r)["id"], req.Content); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteCard removes a card and closes the gap.
func (h *BoardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteCard(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ReorderCards applies a position batch to cards on this board.
func (h *BoardHandler) ReorderCards(w http.ResponseWriter, r *http.Request) {
	h.reorder(w, r, "cards")
}

// MoveCard relocates a card into another column at a position.
func (h *BoardHandler) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColumnID string `json:"columnId"`
		Position int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.repo.MoveCard(r.Context(), mux.Vars(r)["id"], req.ColumnID, req.Position); err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "moved"})
}

func (h *BoardHandler) reorder(w http.ResponseWriter, r *http.Request, kind string) {
	board, ok := boardFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Board not resolved")
		return
	}

	var req struct {
		Updates []database.PositionUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	var err error
	if kind == "columns" {
		err = h.repo.ReorderColumns(r.Context(), board.ID, req.Updates)
	} else {
		err = h.repo.ReorderCards(r.Context(), board.ID, req.Updates)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// --- response helpers ---

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]any{"error": msg, "code": status})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, database.ErrValidation):
		respondError(w, http.StatusBadRequest, "Validation failed")
	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusConflict, "Board name already taken")
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
