package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/okian/mlbview/internal/domain/dates"
	"github.com/okian/mlbview/internal/domain/model"
)

// Aggregations accepted by Leaders.
const (
	AggSum  = "sum"
	AggMean = "mean"
)

const defaultLeadersLimit = 10

// LeadersQuery ranks a dataset's players by one stat.
type LeadersQuery struct {
	Dataset  string
	Stat     string
	From     dates.Date
	To       dates.Date
	Agg      string
	Limit    int
	Reversed *bool
}

// Leader is one ranked player.
type Leader struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Value  float64 `json:"value"`
	Games  int     `json:"games"`
}

// Leaderboard is the result of Leaders.
type Leaderboard struct {
	Dataset  model.Kind `json:"dataset"`
	Stat     string     `json:"stat"`
	Agg      string     `json:"agg"`
	Reversed bool       `json:"reversed"`
	Leaders  []Leader   `json:"leaders"`
}

// Leaders aggregates each player's values of a stat over the range and
// ranks them favorable end first, breaking ties by name. Rows are filtered
// exactly as in Select.
func (s *Service) Leaders(ctx context.Context, q LeadersQuery) (Leaderboard, error) {
	store, _, err := s.ready()
	if err != nil {
		return Leaderboard{}, err
	}
	kind, err := parseKind(q.Dataset)
	if err != nil {
		return Leaderboard{}, err
	}
	agg := strings.ToLower(strings.TrimSpace(q.Agg))
	if agg == "" {
		agg = AggSum
	}
	if agg != AggSum && agg != AggMean {
		return Leaderboard{}, fmt.Errorf("%w: unknown aggregation %q", ErrInvalidQuery, q.Agg)
	}
	rng := dates.Range{From: q.From, To: q.To}
	if rng.Inverted() {
		return Leaderboard{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidQuery, q.From, q.To)
	}
	code, err := resolveStat(ctx, store, kind, q.Stat)
	if err != nil {
		return Leaderboard{}, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLeadersLimit
	}
	limit = min(limit, s.maxSearchResults)

	all, err := store.All(ctx, kind)
	if err != nil {
		return Leaderboard{}, err
	}

	// All is grouped by player, so one pass collects each series.
	var (
		leaders []Leader
		player  string
		series  stats.Float64Data
	)
	flush := func() error {
		if len(series) == 0 {
			return nil
		}
		var v float64
		var err error
		if agg == AggMean {
			v, err = stats.Mean(series)
		} else {
			v, err = stats.Sum(series)
		}
		if err != nil {
			return fmt.Errorf("%s of %s for %s: %w", agg, code, player, err)
		}
		leaders = append(leaders, Leader{Player: player, Value: v, Games: len(series)})
		return nil
	}
	for _, o := range all {
		if !strings.EqualFold(o.Player, player) {
			if err := flush(); err != nil {
				return Leaderboard{}, err
			}
			player, series = o.Player, series[:0]
		}
		if !rng.Contains(o.Date) {
			continue
		}
		if v, _ := o.Stat(code); v.Valid {
			series = append(series, v.Float)
		}
	}
	if err := flush(); err != nil {
		return Leaderboard{}, err
	}

	reversed, _ := s.polarityOf(kind).Resolve(code, q.Reversed)
	sort.SliceStable(leaders, func(i, j int) bool {
		a, b := leaders[i], leaders[j]
		if a.Value != b.Value {
			return (a.Value > b.Value) != reversed
		}
		return a.Player < b.Player
	})
	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	for i := range leaders {
		leaders[i].Rank = i + 1
	}
	if leaders == nil {
		leaders = []Leader{}
	}

	return Leaderboard{
		Dataset:  kind,
		Stat:     code,
		Agg:      agg,
		Reversed: reversed,
		Leaders:  leaders,
	}, nil
}
