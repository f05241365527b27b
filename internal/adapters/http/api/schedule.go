package api

import (
	"net/http"
)

// ScheduleHandler serves the game schedule.
type ScheduleHandler struct {
	deps  Dependencies
	dates dateParser
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps Dependencies, dp dateParser) *ScheduleHandler {
	return &ScheduleHandler{deps: deps, dates: dp}
}

// HandleSchedule handles GET /schedule?from=F&to=T&team=X.
func (h *ScheduleHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "api.schedule"
	if !allowGet(w, r) {
		return
	}
	q := r.URL.Query()
	from, err := h.dates.date(q, "from")
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	to, err := h.dates.date(q, "to")
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	games, err := h.deps.Schedule(r.Context(), from, to, q.Get("team"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, games)
}
