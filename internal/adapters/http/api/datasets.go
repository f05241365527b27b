package api

import (
	"net/http"
	"strings"
)

// DatasetsHandler serves dataset listings and previews.
type DatasetsHandler struct {
	deps Dependencies
}

// NewDatasetsHandler creates a new datasets handler.
func NewDatasetsHandler(deps Dependencies) *DatasetsHandler {
	return &DatasetsHandler{deps: deps}
}

// HandleList handles GET /datasets.
func (h *DatasetsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_datasets"
	if !allowGet(w, r) {
		return
	}
	infos, err := h.deps.Datasets(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// HandleHead handles GET /datasets/{kind}/head?n=N.
func (h *DatasetsHandler) HandleHead(w http.ResponseWriter, r *http.Request) {
	const op = "api.dataset_head"
	if !allowGet(w, r) {
		return
	}
	// Extract the kind between /datasets/ and /head
	rest := strings.TrimPrefix(r.URL.Path, "/datasets/")
	kind, tail, ok := strings.Cut(rest, "/")
	if !ok || kind == "" || tail != "head" {
		http.NotFound(w, r)
		return
	}
	n, err := optionalInt(r.URL.Query(), "n")
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	preview, err := h.deps.Head(r.Context(), kind, n)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
