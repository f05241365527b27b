// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/okian/mlbview/internal/adapters/repository"
	"github.com/okian/mlbview/internal/adapters/search"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
)

// Service answers selection, catalog and ranking queries over a loaded Store.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	cache   *lru.Cache
	indexes map[model.Kind]*search.Index

	// Configuration
	polarity         map[model.Kind]Polarity
	cacheSize        int
	maxPreviewRows   int
	maxSearchResults int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store. Required before Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCacheSize bounds the selection cache. Zero disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithReversedStats sets the stats of kind classified reversed by default.
func WithReversedStats(kind model.Kind, codes []string) Option {
	return func(s *Service) {
		s.polarity[kind] = NewPolarity(codes)
	}
}

// WithMaxPreviewRows caps Head.
func WithMaxPreviewRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPreviewRows = n
		}
	}
}

// WithMaxSearchResults caps Players and Leaders.
func WithMaxSearchResults(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSearchResults = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		polarity:         make(map[model.Kind]Polarity),
		cacheSize:        1024,
		maxPreviewRows:   50,
		maxSearchResults: 100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the search indexes and the selection cache.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		return fmt.Errorf("%w: no store configured", ErrNotStarted)
	}

	s.logger.Info(ctx, "starting mlbview service...")

	s.cache = nil
	if s.cacheSize > 0 {
		cache, err := lru.New(s.cacheSize)
		if err != nil {
			return fmt.Errorf("selection cache: %w", err)
		}
		s.cache = cache
	}

	s.indexes = make(map[model.Kind]*search.Index)
	for _, kind := range s.store.Kinds(ctx) {
		if kind == model.KindSchedule {
			continue
		}
		players, err := s.store.Players(ctx, kind)
		if err != nil {
			return err
		}
		s.indexes[kind] = search.NewIndex(players)
	}

	s.started = true
	s.logger.Info(ctx, "mlbview service started",
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("datasets", len(s.indexes)),
	)

	return nil
}

// Stop drops the cache and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if s.cache != nil {
		s.cache.Purge()
	}
	s.started = false
	s.logger.Info(context.Background(), "mlbview service stopped")
}

// ready returns the components a query needs, or ErrNotStarted.
func (s *Service) ready() (repository.Store, *lru.Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.cache, nil
}

func (s *Service) index(kind model.Kind) (*search.Index, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.indexes[kind]
	return idx, ok
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"cacheSize": s.cacheSize,
	}

	if s.started {
		ctx := context.Background()
		rows := make(map[string]int)
		for _, kind := range s.store.Kinds(ctx) {
			rows[string(kind)] = s.store.Count(ctx, kind)
		}
		stats["datasets"] = rows

		cached := 0
		if s.cache != nil {
			cached = s.cache.Len()
		}
		stats["cachedSelections"] = cached
	}

	return stats
}

// parseKind resolves a dataset name to a player dataset.
func parseKind(name string) (model.Kind, error) {
	kind, ok := model.ParseKind(name)
	if !ok || kind == model.KindSchedule {
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return kind, nil
}
