// Package repository holds the loaded datasets in memory and answers
// read-only lookups against them.
package repository

import (
	"context"

	"github.com/okian/mlbview/internal/domain/model"
)

// Store provides read access to the loaded datasets. Implementations are
// immutable after construction and safe for concurrent use.
type Store interface {
	// Kinds lists the loaded datasets in display order.
	Kinds(ctx context.Context) []model.Kind

	// Count returns the number of rows kept for kind, 0 if not loaded.
	Count(ctx context.Context, kind model.Kind) int

	// Header returns the source column names of kind.
	Header(ctx context.Context, kind model.Kind) ([]string, error)

	// Head returns up to n raw source rows of kind.
	Head(ctx context.Context, kind model.Kind, n int) ([][]string, error)

	// StatColumns lists the numeric statistic codes of kind, derived ones
	// included.
	StatColumns(ctx context.Context, kind model.Kind) ([]string, error)

	// Players returns the sorted distinct player names of kind.
	Players(ctx context.Context, kind model.Kind) ([]string, error)

	// Observations returns a player's rows ordered by date, undated last.
	// The player is matched case-insensitively.
	// Returns ErrPlayerNotFound if the player has no rows.
	Observations(ctx context.Context, kind model.Kind, player string) ([]model.Observation, error)

	// All returns every observation of kind in player, date order.
	All(ctx context.Context, kind model.Kind) ([]model.Observation, error)

	// Games returns the schedule in date order.
	Games(ctx context.Context) ([]model.Game, error)
}
