package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrUnknownDataset = errors.New("dataset not loaded")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMissingColumn  = errors.New("required column missing")
)
