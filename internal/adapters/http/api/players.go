package api

import (
	"net/http"
)

// PlayersHandler serves player lists and searches.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandlePlayers handles GET /players?dataset=D&q=Q&limit=N.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	if !allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	dataset := q.Get("dataset")
	if dataset == "" {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	limit, err := optionalInt(q, "limit")
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	matches, err := h.deps.Players(r.Context(), dataset, q.Get("q"), limit)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
