package source

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyTable        = errors.New("dataset has no header row")
	ErrLoadDataset       = errors.New("load dataset failed")
)
