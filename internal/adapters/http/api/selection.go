package api

import (
	"net/http"

	service "github.com/okian/mlbview/internal/app"
)

// SelectionHandler serves classified selections.
type SelectionHandler struct {
	deps  Dependencies
	dates dateParser
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(deps Dependencies, dp dateParser) *SelectionHandler {
	return &SelectionHandler{deps: deps, dates: dp}
}

// HandleSelection handles
// GET /selection?dataset=D&player=P&stat=S&from=F&to=T&threshold=X&reversed=B.
// An empty selection answers 200 with "empty": true.
func (h *SelectionHandler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	const op = "api.selection"
	if !allowGet(w, r) {
		return
	}
	query, err := h.parse(r)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	sel, err := h.deps.Select(r.Context(), query)
	if err != nil && !service.IsEmpty(err) {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (h *SelectionHandler) parse(r *http.Request) (service.Query, error) {
	q := r.URL.Query()
	query := service.Query{
		Dataset: q.Get("dataset"),
		Player:  q.Get("player"),
		Stat:    q.Get("stat"),
	}
	var err error
	if query.From, err = h.dates.date(q, "from"); err != nil {
		return query, err
	}
	if query.To, err = h.dates.date(q, "to"); err != nil {
		return query, err
	}
	if query.Threshold, err = optionalFloat(q, "threshold"); err != nil {
		return query, err
	}
	if query.Reversed, err = optionalBool(q, "reversed"); err != nil {
		return query, err
	}
	return query, nil
}
