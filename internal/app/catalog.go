package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/mlbview/internal/adapters/search"
	"github.com/okian/mlbview/internal/domain/dates"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/metrics"
)

const (
	defaultPreviewRows = 5
	defaultSearchLimit = 20
)

// DatasetInfo describes one loaded dataset.
type DatasetInfo struct {
	Kind    model.Kind `json:"kind"`
	Rows    int        `json:"rows"`
	Players int        `json:"players,omitempty"`
	Header  []string   `json:"header"`
	Stats   []string   `json:"stats,omitempty"`
}

// Preview is the first rows of a dataset as read from the source.
type Preview struct {
	Kind   model.Kind `json:"kind"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Datasets lists the loaded datasets.
func (s *Service) Datasets(ctx context.Context) ([]DatasetInfo, error) {
	store, _, err := s.ready()
	if err != nil {
		return nil, err
	}

	kinds := store.Kinds(ctx)
	out := make([]DatasetInfo, 0, len(kinds))
	for _, kind := range kinds {
		header, err := store.Header(ctx, kind)
		if err != nil {
			return nil, err
		}
		info := DatasetInfo{Kind: kind, Rows: store.Count(ctx, kind), Header: header}
		if kind != model.KindSchedule {
			if info.Stats, err = store.StatColumns(ctx, kind); err != nil {
				return nil, err
			}
			if idx, ok := s.index(kind); ok {
				info.Players = idx.Len()
			}
		}
		out = append(out, info)
	}
	return out, nil
}

// Head returns the first n source rows of a dataset. n defaults to 5 and is
// capped by the configured maximum.
func (s *Service) Head(ctx context.Context, dataset string, n int) (Preview, error) {
	store, _, err := s.ready()
	if err != nil {
		return Preview{}, err
	}
	kind, ok := model.ParseKind(dataset)
	if !ok {
		return Preview{}, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	if n <= 0 {
		n = defaultPreviewRows
	}
	n = min(n, s.maxPreviewRows)

	header, err := store.Header(ctx, kind)
	if err != nil {
		return Preview{}, err
	}
	rows, err := store.Head(ctx, kind, n)
	if err != nil {
		return Preview{}, err
	}
	return Preview{Kind: kind, Header: header, Rows: rows}, nil
}

// Players lists a dataset's players, ranked by fuzzy match when query is
// given. limit defaults to 20 and is capped by the configured maximum.
func (s *Service) Players(ctx context.Context, dataset, query string, limit int) ([]search.Match, error) {
	if _, _, err := s.ready(); err != nil {
		return nil, err
	}
	kind, err := parseKind(dataset)
	if err != nil {
		return nil, err
	}
	idx, ok := s.index(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, kind)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	limit = min(limit, s.maxSearchResults)

	matches := idx.Find(query, limit)
	if strings.TrimSpace(query) != "" {
		metrics.RecordPlayerSearch(len(matches) > 0)
	}
	return matches, nil
}

// Schedule lists games inside the inclusive range, optionally only those
// involving team. Undated games are listed only when the range is unbounded.
func (s *Service) Schedule(ctx context.Context, from, to dates.Date, team string) ([]model.Game, error) {
	store, _, err := s.ready()
	if err != nil {
		return nil, err
	}
	rng := dates.Range{From: from, To: to}
	if rng.Inverted() {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidQuery, from, to)
	}
	games, err := store.Games(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if rng.Contains(g.Date) && g.Involves(team) {
			out = append(out, g)
		}
	}
	return out, nil
}
