// Package classify splits a statistic's values around a threshold.
//
// Every finite value lands in exactly one bucket. Above and Below are
// "favorable" and "unfavorable": with normal polarity higher is better, with
// reversed polarity (ERA, WHIP and friends) lower is better. At is reserved
// for exact equality and ignores polarity.
package classify

import (
	"math"

	"github.com/shopspring/decimal"
)

// Bucket is the classification of one value.
type Bucket string

// Buckets.
const (
	Above Bucket = "above"
	Below Bucket = "below"
	At    Bucket = "at"
)

// Buckets lists every bucket in display order.
var Buckets = []Bucket{Above, Below, At}

// Color is the chart color associated with a bucket.
type Color string

// Colors shared by the pie and bar charts.
const (
	Green Color = "green"
	Red   Color = "red"
	Gray  Color = "gray"
)

// Color returns the chart color for b.
func (b Bucket) Color() Color {
	switch b {
	case Above:
		return Green
	case Below:
		return Red
	default:
		return Gray
	}
}

// Classified is a value together with its bucket and color.
type Classified struct {
	Value  float64 `json:"value"`
	Bucket Bucket  `json:"bucket"`
	Color  Color   `json:"color"`
}

// BucketOf classifies a single value.
func BucketOf(v, threshold float64, reversed bool) Bucket {
	switch {
	case v == threshold:
		return At
	case (v > threshold) != reversed:
		return Above
	default:
		return Below
	}
}

// Classify assigns a bucket to every finite value, keeping input order.
// Non-finite values are dropped; a NaN threshold classifies nothing.
func Classify(values []float64, threshold float64, reversed bool) []Classified {
	if math.IsNaN(threshold) {
		return []Classified{}
	}
	out := make([]Classified, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		b := BucketOf(v, threshold, reversed)
		out = append(out, Classified{Value: v, Bucket: b, Color: b.Color()})
	}
	return out
}

// Share is the count and percentage of one bucket.
type Share struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Summary aggregates a classified series for the pie chart.
type Summary struct {
	Total int   `json:"total"`
	Empty bool  `json:"empty"`
	Above Share `json:"above"`
	Below Share `json:"below"`
	At    Share `json:"at"`
}

// Share returns the share for b.
func (s Summary) Share(b Bucket) Share {
	switch b {
	case Above:
		return s.Above
	case Below:
		return s.Below
	default:
		return s.At
	}
}

var hundred = decimal.NewFromInt(100)

// Summarize counts buckets and reports each as a percentage of the total,
// rounded to two decimals. An empty input returns ErrEmpty and a Summary
// with Empty set.
func Summarize(classified []Classified) (Summary, error) {
	if len(classified) == 0 {
		return Summary{Empty: true}, ErrEmpty
	}

	var above, below, at int
	for _, c := range classified {
		switch c.Bucket {
		case Above:
			above++
		case Below:
			below++
		default:
			at++
		}
	}

	total := len(classified)
	return Summary{
		Total: total,
		Above: share(above, total),
		Below: share(below, total),
		At:    share(at, total),
	}, nil
}

func share(count, total int) Share {
	pct := decimal.NewFromInt(int64(count)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(total)), 2)
	return Share{Count: count, Percentage: pct.InexactFloat64()}
}
