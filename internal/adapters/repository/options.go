package repository

import "github.com/okian/mlbview/pkg/logger"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithReferenceYear sets the year given to dates that carry none.
func WithReferenceYear(year int) Option {
	return func(s *MemoryStore) {
		if year > 0 {
			s.referenceYear = year
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.logger = l
		}
	}
}
