package classify

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Median returns the median of the finite values, the default threshold
// when the caller supplies none.
func Median(values []float64) (float64, error) {
	data := finite(values)
	if len(data) == 0 {
		return 0, ErrEmpty
	}
	m, err := stats.Median(data)
	if err != nil {
		return 0, fmt.Errorf("median: %w", err)
	}
	return m, nil
}

// Description summarizes the distribution of a series.
type Description struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Describe computes descriptive statistics over the finite values.
func Describe(values []float64) (Description, error) {
	data := finite(values)
	if len(data) == 0 {
		return Description{}, ErrEmpty
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Description{}, fmt.Errorf("mean: %w", err)
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return Description{}, fmt.Errorf("standard deviation: %w", err)
	}
	lo, err := stats.Min(data)
	if err != nil {
		return Description{}, fmt.Errorf("min: %w", err)
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Description{}, fmt.Errorf("max: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Description{}, fmt.Errorf("median: %w", err)
	}

	return Description{
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Min:    lo,
		Max:    hi,
		Median: median,
	}, nil
}

func finite(values []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
