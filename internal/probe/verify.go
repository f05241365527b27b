package probe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okian/mlbview/internal/domain/classify"
	"github.com/okian/mlbview/pkg/logger"
)

// PercentTolerance bounds how far bucket percentages may drift from 100.
const PercentTolerance = 0.05

// Check verifies a summary: bucket counts sum to the total and, unless the
// summary is empty, percentages sum to 100 within PercentTolerance.
func Check(s classify.Summary) error {
	if n := s.Above.Count + s.Below.Count + s.At.Count; n != s.Total {
		return fmt.Errorf("%w: counts sum to %d, total is %d", ErrInvariant, n, s.Total)
	}
	if s.Total == 0 {
		if !s.Empty {
			return fmt.Errorf("%w: zero total not marked empty", ErrInvariant)
		}
		return nil
	}
	p := s.Above.Percentage + s.Below.Percentage + s.At.Percentage
	if math.Abs(p-100) > PercentTolerance {
		return fmt.Errorf("%w: percentages sum to %.2f", ErrInvariant, p)
	}
	return nil
}

// Failure is one player whose selection failed verification.
type Failure struct {
	Player string
	Err    error
}

// Report is the outcome of Verify.
type Report struct {
	Dataset  string
	Stat     string
	Players  int
	Checked  int
	Empty    int
	Failures []Failure
}

// OK reports whether every player passed.
func (r Report) OK() bool { return len(r.Failures) == 0 }

// Verify selects stat for every player of dataset and checks each summary.
// Empty selections count as checked; other request errors are failures.
func Verify(ctx context.Context, c *Client, cfg Config, dataset, stat string) (Report, error) {
	rep := Report{Dataset: dataset, Stat: stat}
	players, err := c.Players(ctx, dataset, "", math.MaxInt32)
	if err != nil {
		return rep, fmt.Errorf("failed to list players: %w", err)
	}
	rep.Players = len(players)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, m := range players {
		name := m.Name
		g.Go(func() error {
			sel, err := c.Select(gctx, SelectParams{Dataset: dataset, Player: name, Stat: stat})
			if err == nil {
				err = Check(sel.Summary)
			}
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				rep.Checked++
				if sel.Empty {
					rep.Empty++
				}
			case errors.Is(err, context.Canceled):
				return err
			default:
				rep.Failures = append(rep.Failures, Failure{Player: name, Err: err})
			}
			if cfg.Verbose {
				logger.Get().Debug(gctx, "verified player",
					logger.String("player", name),
					logger.Int("points", len(sel.Points)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	sort.Slice(rep.Failures, func(i, j int) bool {
		return rep.Failures[i].Player < rep.Failures[j].Player
	})
	return rep, nil
}
