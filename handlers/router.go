package handlers

import (
	"github.com/gorilla/mux"
)

// NewRouter wires the shared-board API under /api/v1. Reads are public;
// the board-scoped mutation routes go through PinAuth.
func NewRouter(h *BoardHandler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.Health).Methods("GET")
	api.HandleFunc("/boards", h.CreateBoard).Methods("POST")
	api.HandleFunc("/boards/{name}", h.GetBoard).Methods("GET")

	protected := api.PathPrefix("/boards/{name}").Subrouter()
	protected.Use(h.PinAuth)
	protected.HandleFunc("", h.DeleteBoard).Methods("DELETE")
	protected.HandleFunc("/columns", h.CreateColumn).Methods("POST")
	protected.HandleFunc("/columns/reorder", h.ReorderColumns).Methods("PATCH")
	protected.HandleFunc("/columns/{id}", h.UpdateColumn).Methods("PATCH")
	protected.HandleFunc("/columns/{id}", h.DeleteColumn).Methods("DELETE")
	protected.HandleFunc("/columns/{id}/cards", h.CreateCard).Methods("POST")
	protected.HandleFunc("/cards/reorder", h.ReorderCards).Methods("PATCH")
	protected.HandleFunc("/cards/{id}/move", h.MoveCard).Methods("PATCH")
	protected.HandleFunc("/cards/{id}", h.UpdateCard).Methods("PATCH")
	protected.HandleFunc("/cards/{id}", h.DeleteCard).Methods("DELETE")

	return r
}
