package api

import (
	"net/http"

	service "github.com/okian/mlbview/internal/app"
)

// LeadersHandler handles leaders requests.
type LeadersHandler struct {
	deps  Dependencies
	dates dateParser
}

// NewLeadersHandler creates a new leaders handler.
func NewLeadersHandler(deps Dependencies, dp dateParser) *LeadersHandler {
	return &LeadersHandler{deps: deps, dates: dp}
}

// HandleLeaders handles GET /leaders?dataset=D&stat=S&from=F&to=T&agg=A&limit=N.
func (h *LeadersHandler) HandleLeaders(w http.ResponseWriter, r *http.Request) {
	const op = "api.leaders"
	if !allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	query := service.LeadersQuery{
		Dataset: q.Get("dataset"),
		Stat:    q.Get("stat"),
		Agg:     q.Get("agg"),
	}
	var err error
	if query.From, err = h.dates.date(q, "from"); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if query.To, err = h.dates.date(q, "to"); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if query.Limit, err = optionalInt(q, "limit"); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if query.Reversed, err = optionalBool(q, "reversed"); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	board, err := h.deps.Leaders(r.Context(), query)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, board)
}
