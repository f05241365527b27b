// Package fixtures provides a small season of sample tables for tests.
package fixtures

import (
	"context"

	"github.com/okian/mlbview/internal/adapters/repository"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
)

// Year is the reference year of the sample dates.
const Year = 2024

// Hitters returns the sample hitters table. Aaron Judge's dated H values in
// March and April are 1, 2, 2, 3, 4; he also has an undated row (H=9) and a
// row with H missing.
func Hitters() *model.Table {
	return &model.Table{
		Kind:   model.KindHitters,
		Source: "hitters.csv",
		Header: []string{"Player", "Date", "AB", "H", "2B", "3B", "HR", "SO"},
		Rows: [][]string{
			{"Aaron Judge", "Mar 28", "4", "1", "0", "0", "1", "2"},
			{"Juan Soto", "Mar 28", "3", "2", "0", "0", "1", "1"},
			{"Aaron Judge", "Mar_29", "4", "2", "1", "0", "0", "1"},
			{"Juan Soto", "Mar 29", "4", "0", "0", "0", "0", "1"},
			{"Aaron Judge", "Mar 30", "3", "2", "0", "0", "0", "0"},
			{"Aaron Judge", "Apr 1", "4", "3", "0", "1", "0", "1"},
			{"Aaron Judge", "Apr 2", "5", "4", "2", "0", "1", "1"},
			{"Aaron Judge", "TBD", "4", "9", "0", "0", "0", "3"},
			{"Aaron Judge", "Apr 3", "4", "", "0", "0", "0", "2"},
		},
	}
}

// Pitchers returns the sample pitchers table, keyed by a "Players" column.
func Pitchers() *model.Table {
	return &model.Table{
		Kind:   model.KindPitchers,
		Source: "pitchers.csv",
		Header: []string{"Players", "Date", "IP", "ERA", "SO"},
		Rows: [][]string{
			{"Gerrit Cole", "Mar 28", "6", "3.00", "8"},
			{"Gerrit Cole", "Apr 2", "7", "1.50", "5"},
			{"Gerrit Cole", "Apr 7", "5", "4.50", "10"},
			{"Corbin Burnes", "Apr 7", "6", "3.00", "7"},
		},
	}
}

// Schedule returns the sample schedule with month-first dates.
func Schedule() *model.Table {
	return &model.Table{
		Kind:   model.KindSchedule,
		Source: "schedule.csv",
		Header: []string{"Date", "Home", "Away", "Time"},
		Rows: [][]string{
			{"03/28/2024", "NYY", "HOU", "7:05 PM"},
			{"3/29/2024", "BOS", "NYY", "4:10 PM"},
			{"04/01/2024", "LAD", "SD", "10:10 PM"},
			{"TBD", "NYY", "TOR", ""},
		},
	}
}

// Tables returns all sample tables keyed by kind.
func Tables() map[model.Kind]*model.Table {
	return map[model.Kind]*model.Table{
		model.KindHitters:  Hitters(),
		model.KindPitchers: Pitchers(),
		model.KindSchedule: Schedule(),
	}
}

// Store builds a MemoryStore over Tables.
func Store(ctx context.Context) (*repository.MemoryStore, error) {
	return repository.NewMemoryStore(ctx, Tables(),
		repository.WithReferenceYear(Year),
		repository.WithLogger(logger.NewNop()),
	)
}
