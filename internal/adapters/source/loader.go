package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
	"github.com/okian/mlbview/pkg/metrics"
)

// Loader reads several datasets concurrently.
type Loader struct {
	reader *Reader
	logger logger.Logger
}

// LoaderOption applies a configuration option to the Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l logger.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithReader replaces the file reader.
func WithReader(r *Reader) LoaderOption {
	return func(ld *Loader) {
		if r != nil {
			ld.reader = r
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logger.Get().Named("source")
	}
	if l.reader == nil {
		l.reader = NewReader(WithReaderLogger(l.logger))
	}
	return l
}

// LoadAll reads every spec. A missing optional file is skipped with a
// warning; any other failure cancels the remaining reads.
func (l *Loader) LoadAll(ctx context.Context, specs []Spec) (map[model.Kind]*model.Table, error) {
	var (
		mu     sync.Mutex
		tables = make(map[model.Kind]*model.Table, len(specs))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range specs {
		spec := spec
		if spec.Path == "" {
			if spec.Optional {
				continue
			}
			return nil, fmt.Errorf("%w: %s: no path configured", ErrLoadDataset, spec.Kind)
		}

		g.Go(func() error {
			start := time.Now()
			t, err := l.reader.Read(gctx, spec.Kind, spec.Path)
			if err != nil {
				if spec.Optional && errors.Is(err, fs.ErrNotExist) {
					l.logger.Warn(gctx, "optional dataset missing; skipping",
						logger.String("dataset", string(spec.Kind)),
						logger.String("path", spec.Path),
					)
					return nil
				}
				return fmt.Errorf("%w: %s: %w", ErrLoadDataset, spec.Kind, err)
			}

			took := time.Since(start)
			metrics.RecordDatasetLoad(string(spec.Kind), len(t.Rows), float64(took.Milliseconds()))
			logLoaded(gctx, l.logger, t, took)

			mu.Lock()
			tables[spec.Kind] = t
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
