package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/okian/mlbview/internal/adapters/repository"
	"github.com/okian/mlbview/internal/domain/classify"
	"github.com/okian/mlbview/internal/domain/dates"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
	"github.com/okian/mlbview/pkg/metrics"
)

// Threshold sources reported in a Selection.
const (
	ThresholdMedian   = "median"
	ThresholdExplicit = "explicit"
)

// Query selects one player's series of a stat.
type Query struct {
	Dataset string
	Player  string
	Stat    string
	From    dates.Date
	To      dates.Date

	// Threshold overrides the median when set.
	Threshold *float64

	// Reversed overrides the dataset's polarity table when set.
	Reversed *bool
}

// Point is one classified observation.
type Point struct {
	Date    dates.Date      `json:"date"`
	RawDate string          `json:"raw_date"`
	Value   float64         `json:"value"`
	Bucket  classify.Bucket `json:"bucket"`
	Color   classify.Color  `json:"color"`
}

// Excluded counts the rows dropped before classification.
type Excluded struct {
	Undated    int `json:"undated"`
	OutOfRange int `json:"out_of_range"`
	Missing    int `json:"missing"`
}

// Selection is the classified series and its aggregates. Points are shared
// with the cache and must not be modified.
type Selection struct {
	Dataset         model.Kind            `json:"dataset"`
	Player          string                `json:"player"`
	Stat            string                `json:"stat"`
	From            dates.Date            `json:"from"`
	To              dates.Date            `json:"to"`
	Threshold       float64               `json:"threshold"`
	ThresholdSource string                `json:"threshold_source,omitempty"`
	Reversed        bool                  `json:"reversed"`
	PolarityDefault bool                  `json:"polarity_default"`
	Points          []Point               `json:"points"`
	Summary         classify.Summary      `json:"summary"`
	Description     *classify.Description `json:"description,omitempty"`
	Excluded        Excluded              `json:"excluded"`
	Empty           bool                  `json:"empty"`
	Cached          bool                  `json:"cached"`
}

// Select filters a player's observations by date range, drops missing values
// and classifies the rest against the threshold. An empty result is returned
// together with ErrNoData.
func (s *Service) Select(ctx context.Context, q Query) (Selection, error) {
	start := time.Now()

	store, cache, err := s.ready()
	if err != nil {
		return Selection{}, err
	}
	kind, err := parseKind(q.Dataset)
	if err != nil {
		return Selection{}, err
	}
	if strings.TrimSpace(q.Player) == "" {
		return Selection{}, fmt.Errorf("%w: player is required", ErrInvalidQuery)
	}
	rng := dates.Range{From: q.From, To: q.To}
	if rng.Inverted() {
		return Selection{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidQuery, q.From, q.To)
	}
	if q.Threshold != nil && (math.IsNaN(*q.Threshold) || math.IsInf(*q.Threshold, 0)) {
		return Selection{}, fmt.Errorf("%w: threshold must be finite", ErrInvalidQuery)
	}

	code, err := resolveStat(ctx, store, kind, q.Stat)
	if err != nil {
		return Selection{}, err
	}
	obs, err := store.Observations(ctx, kind, q.Player)
	if err != nil {
		return Selection{}, err
	}

	reversed, polarityDefault := s.polarityOf(kind).Resolve(code, q.Reversed)
	key := cacheKey(kind, obs[0].Player, code, rng, q.Threshold, reversed)
	if sel, ok := lookup(cache, key); ok {
		if sel.Empty {
			return sel, ErrNoData
		}
		return sel, nil
	}

	sel := Selection{
		Dataset:         kind,
		Player:          obs[0].Player,
		Stat:            code,
		From:            q.From,
		To:              q.To,
		Reversed:        reversed,
		PolarityDefault: polarityDefault,
		Points:          []Point{},
	}

	kept := make([]model.Observation, 0, len(obs))
	values := make([]float64, 0, len(obs))
	for _, o := range obs {
		if !rng.Contains(o.Date) {
			if o.Date.Valid() {
				sel.Excluded.OutOfRange++
			} else {
				sel.Excluded.Undated++
			}
			continue
		}
		v, _ := o.Stat(code)
		if !v.Valid {
			sel.Excluded.Missing++
			continue
		}
		kept = append(kept, o)
		values = append(values, v.Float)
	}
	metrics.RecordValuesExcluded("undated", sel.Excluded.Undated)
	metrics.RecordValuesExcluded("out_of_range", sel.Excluded.OutOfRange)
	metrics.RecordValuesExcluded("missing", sel.Excluded.Missing)

	if len(values) == 0 {
		sel.Empty = true
		sel.Summary = classify.Summary{Empty: true}
		metrics.RecordSelectionEmpty(string(kind))
		remember(cache, key, sel)
		s.logger.Debug(ctx, "selection is empty",
			logger.String("dataset", string(kind)),
			logger.String("player", sel.Player),
			logger.String("stat", code),
		)
		return sel, ErrNoData
	}

	if q.Threshold != nil {
		sel.Threshold = *q.Threshold
		sel.ThresholdSource = ThresholdExplicit
	} else {
		median, err := classify.Median(values)
		if err != nil {
			return Selection{}, fmt.Errorf("median of %s: %w", code, err)
		}
		sel.Threshold = median
		sel.ThresholdSource = ThresholdMedian
	}

	classified := classify.Classify(values, sel.Threshold, reversed)
	sel.Points = make([]Point, len(classified))
	for i, c := range classified {
		sel.Points[i] = Point{
			Date:    kept[i].Date,
			RawDate: kept[i].RawDate,
			Value:   c.Value,
			Bucket:  c.Bucket,
			Color:   c.Color,
		}
	}

	sel.Summary, err = classify.Summarize(classified)
	if err != nil {
		return Selection{}, err
	}
	desc, err := classify.Describe(values)
	if err == nil {
		sel.Description = &desc
	}

	remember(cache, key, sel)
	metrics.RecordSelection(string(kind), reversed,
		sel.Summary.Above.Count, sel.Summary.Below.Count, sel.Summary.At.Count,
		float64(time.Since(start).Nanoseconds())/1e6)

	return sel, nil
}

func (s *Service) polarityOf(kind model.Kind) Polarity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.polarity[kind]
}

// resolveStat matches code case-insensitively against the dataset's stat
// columns and returns the canonical spelling.
func resolveStat(ctx context.Context, store repository.Store, kind model.Kind, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: stat is required", ErrInvalidQuery)
	}
	cols, err := store.StatColumns(ctx, kind)
	if err != nil {
		return "", err
	}
	for _, c := range cols {
		if c == code {
			return c, nil
		}
	}
	for _, c := range cols {
		if strings.EqualFold(c, code) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrUnknownStat, code, kind)
}

func cacheKey(kind model.Kind, player, code string, rng dates.Range, threshold *float64, reversed bool) string {
	t := "median"
	if threshold != nil {
		t = strconv.FormatFloat(*threshold, 'g', -1, 64)
	}
	return strings.Join([]string{
		string(kind),
		strings.ToLower(player),
		code,
		rng.From.String(),
		rng.To.String(),
		t,
		strconv.FormatBool(reversed),
	}, "|")
}

func lookup(cache *lru.Cache, key string) (Selection, bool) {
	if cache == nil {
		return Selection{}, false
	}
	v, ok := cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return Selection{}, false
	}
	sel := v.(Selection)
	sel.Cached = true
	return sel, true
}

func remember(cache *lru.Cache, key string, sel Selection) {
	if cache != nil {
		cache.Add(key, sel)
	}
}

// IsEmpty reports whether err only signals an empty selection.
func IsEmpty(err error) bool { return errors.Is(err, ErrNoData) }
