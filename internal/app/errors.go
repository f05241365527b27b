package service

import (
	"errors"

	"github.com/okian/mlbview/internal/adapters/repository"
)

// Sentinel error kinds returned by the Service. Lookup failures reuse the
// repository's kinds so errors.Is works across layers.
var (
	ErrUnknownDataset = repository.ErrUnknownDataset
	ErrPlayerNotFound = repository.ErrPlayerNotFound
	ErrUnknownStat    = errors.New("unknown stat")
	ErrNoData         = errors.New("no data for selection")
	ErrInvalidQuery   = errors.New("invalid query")
	ErrNotStarted     = errors.New("service not started")
)
