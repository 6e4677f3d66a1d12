package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"nokanban.pro/database"
	"nokanban.pro/services"
)

type contextKey string

const boardContextKey contextKey = "board"

// PinAuth guards mutating routes: it resolves the board from the {name}
// path variable, then requires the X-Board-Pin header to hash to the stored
// value. The resolved board is placed in the request context so handlers
// don't look it up twice.
func (h *BoardHandler) PinAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		board, err := h.repo.GetBoardByName(r.Context(), name)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondError(w, http.StatusNotFound, "Board not found")
				return
			}
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		pin := r.Header.Get(services.PinHeader)
		if pin == "" {
			respondError(w, http.StatusUnauthorized, "Missing PIN")
			return
		}

		hash, err := h.repo.PinHash(r.Context(), name)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if subtle.ConstantTimeCompare([]byte(HashPin(pin)), []byte(hash)) != 1 {
			respondError(w, http.StatusUnauthorized, "Invalid PIN")
			return
		}

		ctx := context.WithValue(r.Context(), boardContextKey, board)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func boardFrom(r *http.Request) (*database.Board, bool) {
	board, ok := r.Context().Value(boardContextKey).(*database.Board)
	return board, ok
}
