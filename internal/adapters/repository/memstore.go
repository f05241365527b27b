package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/okian/mlbview/internal/domain/dates"
	"github.com/okian/mlbview/internal/domain/derived"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
	"github.com/okian/mlbview/pkg/metrics"
)

// Column aliases seen across revisions of the source files.
var (
	playerColumns = []string{"Player", "Players", "Name"}
	dateColumns   = []string{"Date", "Game Date", "GameDate"}
	homeColumns   = []string{"Home", "Home Team", "HomeTeam"}
	awayColumns   = []string{"Away", "Away Team", "AwayTeam", "Visitor"}
)

// dataset is one loaded player table.
type dataset struct {
	table    *model.Table
	stats    []string
	players  []string
	byPlayer map[string][]model.Observation // keyed by lower-cased name
	all      []model.Observation
}

// MemoryStore is the in-memory Store. It is built once and never mutated,
// so reads take no locks.
type MemoryStore struct {
	referenceYear int
	logger        logger.Logger

	datasets map[model.Kind]*dataset
	schedule *model.Table
	games    []model.Game
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore converts raw tables into observations.
// Player tables must have a player column; the schedule is optional.
func NewMemoryStore(ctx context.Context, tables map[model.Kind]*model.Table, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		referenceYear: time.Now().Year(),
		datasets:      make(map[model.Kind]*dataset),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("repository")
	}

	for _, kind := range []model.Kind{model.KindHitters, model.KindPitchers} {
		t, ok := tables[kind]
		if !ok {
			continue
		}
		ds, err := s.buildDataset(ctx, t)
		if err != nil {
			return nil, err
		}
		s.datasets[kind] = ds
	}

	if t, ok := tables[model.KindSchedule]; ok {
		s.schedule = t
		s.games = s.buildGames(ctx, t)
	}
	return s, nil
}

func (s *MemoryStore) buildDataset(ctx context.Context, t *model.Table) (*dataset, error) {
	playerCol := t.Column(playerColumns...)
	if playerCol < 0 {
		return nil, fmt.Errorf("%w: %s has no player column", ErrMissingColumn, t.Kind)
	}
	dateCol := t.Column(dateColumns...)
	if dateCol < 0 {
		s.logger.Warn(ctx, "dataset has no date column; all rows are undated",
			logger.String("dataset", string(t.Kind)))
	}

	deriveTB := derived.CanDeriveTotalBases(t.Header) && t.Column(derived.TotalBases) < 0
	var keep []string
	if deriveTB {
		keep = derived.TotalBasesInputs()
	}
	statCols := numericColumns(t, playerCol, dateCol, keep)
	codes := make([]string, 0, len(statCols)+1)
	for _, c := range statCols {
		codes = append(codes, t.Header[c])
	}
	if deriveTB {
		codes = append(codes, derived.TotalBases)
	}

	ds := &dataset{
		table:    t,
		stats:    codes,
		byPlayer: make(map[string][]model.Observation),
	}

	var skipped, undated int
	for _, row := range t.Rows {
		player := strings.TrimSpace(row[playerCol])
		if player == "" {
			skipped++
			continue
		}

		obs := model.Observation{
			Player: player,
			Stats:  make(map[string]model.Value, len(codes)),
		}
		if dateCol >= 0 {
			obs.RawDate = row[dateCol]
			obs.Date = dates.Normalize(row[dateCol], s.referenceYear)
		}
		if !obs.Date.Valid() {
			undated++
		}
		for _, c := range statCols {
			obs.Stats[t.Header[c]] = model.ParseValue(row[c])
		}
		if deriveTB {
			derived.Apply(obs.Stats)
		}

		key := strings.ToLower(player)
		if _, seen := ds.byPlayer[key]; !seen {
			ds.players = append(ds.players, player)
		}
		ds.byPlayer[key] = append(ds.byPlayer[key], obs)
	}

	sort.Strings(ds.players)
	for _, p := range ds.players {
		key := strings.ToLower(p)
		sortByDate(ds.byPlayer[key])
		ds.all = append(ds.all, ds.byPlayer[key]...)
	}

	metrics.UpdateDatasetRows(string(t.Kind), len(ds.all))
	metrics.RecordRowsWithoutDate(string(t.Kind), undated)
	s.logger.Info(ctx, "dataset indexed",
		logger.String("dataset", string(t.Kind)),
		logger.Int("players", len(ds.players)),
		logger.Int("observations", len(ds.all)),
		logger.Int("undated", undated),
		logger.Int("skipped", skipped),
		logger.Bool("total_bases_derived", deriveTB),
	)
	return ds, nil
}

// numericColumns returns the columns, other than player and date, holding
// at least one numeric cell. Columns named in keep are returned even when
// every cell is blank.
func numericColumns(t *model.Table, playerCol, dateCol int, keep []string) []int {
	var cols []int
	for c := range t.Header {
		if c == playerCol || c == dateCol || t.Header[c] == "" {
			continue
		}
		if slices.Contains(keep, t.Header[c]) {
			cols = append(cols, c)
			continue
		}
		for _, row := range t.Rows {
			if model.ParseValue(row[c]).Valid {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

// sortByDate orders observations by date with undated rows last, keeping
// source order for ties.
func sortByDate(obs []model.Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		a, b := obs[i].Date, obs[j].Date
		switch {
		case !a.Valid():
			return false
		case !b.Valid():
			return true
		default:
			return a.Before(b)
		}
	})
}

func (s *MemoryStore) buildGames(ctx context.Context, t *model.Table) []model.Game {
	dateCol := t.Column(dateColumns...)
	homeCol := t.Column(homeColumns...)
	awayCol := t.Column(awayColumns...)

	games := make([]model.Game, 0, len(t.Rows))
	undated := 0
	for _, row := range t.Rows {
		g := model.Game{Fields: make(map[string]string, len(t.Header))}
		for i, h := range t.Header {
			g.Fields[h] = row[i]
		}
		if dateCol >= 0 {
			g.RawDate = row[dateCol]
			g.Date = dates.Normalize(row[dateCol], s.referenceYear)
		}
		if !g.Date.Valid() {
			undated++
		}
		if homeCol >= 0 {
			g.Home = strings.TrimSpace(row[homeCol])
		}
		if awayCol >= 0 {
			g.Away = strings.TrimSpace(row[awayCol])
		}
		games = append(games, g)
	}

	sort.SliceStable(games, func(i, j int) bool {
		a, b := games[i].Date, games[j].Date
		if !a.Valid() {
			return false
		}
		return !b.Valid() || a.Before(b)
	})

	metrics.UpdateDatasetRows(string(model.KindSchedule), len(games))
	metrics.RecordRowsWithoutDate(string(model.KindSchedule), undated)
	s.logger.Info(ctx, "schedule indexed",
		logger.Int("games", len(games)),
		logger.Int("undated", undated),
	)
	return games
}

// Kinds implements Store.
func (s *MemoryStore) Kinds(_ context.Context) []model.Kind {
	var out []model.Kind
	for _, k := range model.Kinds {
		if s.has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s *MemoryStore) has(kind model.Kind) bool {
	if kind == model.KindSchedule {
		return s.schedule != nil
	}
	_, ok := s.datasets[kind]
	return ok
}

func (s *MemoryStore) table(kind model.Kind) (*model.Table, error) {
	if kind == model.KindSchedule {
		if s.schedule == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, kind)
		}
		return s.schedule, nil
	}
	ds, err := s.dataset(kind)
	if err != nil {
		return nil, err
	}
	return ds.table, nil
}

func (s *MemoryStore) dataset(kind model.Kind) (*dataset, error) {
	ds, ok := s.datasets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, kind)
	}
	return ds, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context, kind model.Kind) int {
	if kind == model.KindSchedule {
		return len(s.games)
	}
	if ds, ok := s.datasets[kind]; ok {
		return len(ds.all)
	}
	return 0
}

// Header implements Store.
func (s *MemoryStore) Header(_ context.Context, kind model.Kind) ([]string, error) {
	t, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.Header...), nil
}

// Head implements Store.
func (s *MemoryStore) Head(_ context.Context, kind model.Kind, n int) ([][]string, error) {
	t, err := s.table(kind)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := make([][]string, n)
	for i := range out {
		out[i] = append([]string(nil), t.Rows[i]...)
	}
	return out, nil
}

// StatColumns implements Store.
func (s *MemoryStore) StatColumns(_ context.Context, kind model.Kind) ([]string, error) {
	ds, err := s.dataset(kind)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), ds.stats...), nil
}

// Players implements Store.
func (s *MemoryStore) Players(_ context.Context, kind model.Kind) ([]string, error) {
	ds, err := s.dataset(kind)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), ds.players...), nil
}

// Observations implements Store.
func (s *MemoryStore) Observations(_ context.Context, kind model.Kind, player string) ([]model.Observation, error) {
	ds, err := s.dataset(kind)
	if err != nil {
		return nil, err
	}
	obs, ok := ds.byPlayer[strings.ToLower(strings.TrimSpace(player))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, player)
	}
	return obs, nil
}

// All implements Store.
func (s *MemoryStore) All(_ context.Context, kind model.Kind) ([]model.Observation, error) {
	ds, err := s.dataset(kind)
	if err != nil {
		return nil, err
	}
	return ds.all, nil
}

// Games implements Store.
func (s *MemoryStore) Games(_ context.Context) ([]model.Game, error) {
	if s.schedule == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, model.KindSchedule)
	}
	return s.games, nil
}
