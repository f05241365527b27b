// Package derived computes statistics that are not present in the source
// tables but follow from their counting columns.
package derived

import "github.com/okian/mlbview/internal/domain/model"

// Column codes used by the derivations.
const (
	Hits       = "H"
	Doubles    = "2B"
	Triples    = "3B"
	HomeRuns   = "HR"
	TotalBases = "TB"
)

// totalBasesInputs must all be present in a header before TB is derived.
var totalBasesInputs = []string{Hits, Doubles, Triples, HomeRuns}

// ComputeTotalBases returns singles + 2*doubles + 3*triples + 4*homers,
// where singles are the hits left after removing extra-base hits.
func ComputeTotalBases(h, doubles, triples, hr float64) float64 {
	singles := h - doubles - triples - hr
	return singles + 2*doubles + 3*triples + 4*hr
}

// CanDeriveTotalBases reports whether header carries every input column.
func CanDeriveTotalBases(header []string) bool {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	for _, c := range totalBasesInputs {
		if !have[c] {
			return false
		}
	}
	return true
}

// TotalBasesInputs returns the columns TB is computed from.
func TotalBasesInputs() []string {
	return append([]string(nil), totalBasesInputs...)
}

// Apply adds TB to stats when the inputs exist. Missing or non-numeric
// inputs count as zero, so TB is always valid once derived. A TB column
// already present in the source is left alone.
func Apply(stats map[string]model.Value) bool {
	if _, ok := stats[TotalBases]; ok {
		return false
	}
	for _, c := range totalBasesInputs {
		if _, ok := stats[c]; !ok {
			return false
		}
	}
	stats[TotalBases] = model.Number(ComputeTotalBases(
		stats[Hits].OrZero(),
		stats[Doubles].OrZero(),
		stats[Triples].OrZero(),
		stats[HomeRuns].OrZero(),
	))
	return true
}
