// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/mlbview/internal/domain/dates"
)

// Kind names a loaded dataset.
type Kind string

// Known datasets.
const (
	KindHitters  Kind = "hitters"
	KindPitchers Kind = "pitchers"
	KindSchedule Kind = "schedule"
)

// Kinds lists every dataset kind in display order.
var Kinds = []Kind{KindHitters, KindPitchers, KindSchedule}

// ParseKind maps a user supplied name onto a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindHitters, KindPitchers, KindSchedule:
		return k, true
	}
	return "", false
}

// Value is a statistic that may be missing in the source.
type Value struct {
	Float float64
	Valid bool
}

// Missing is the zero Value.
var Missing = Value{}

// Number wraps a finite float as a valid Value.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Value{Float: f, Valid: true}
}

// ParseValue coerces a raw cell into a Value. Blank, placeholder and
// non-numeric cells are Missing.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	switch strings.ToLower(s) {
	case "", "-", "--", "na", "n/a", "nan", "null", "none", "inf", "-inf", "+inf", "infinity":
		return Missing
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return Missing
	}
	return Number(f)
}

// OrZero returns the float, or 0 when missing.
func (v Value) OrZero() float64 {
	if !v.Valid {
		return 0
	}
	return v.Float
}

// Observation is one player-game row. It is never mutated after loading.
type Observation struct {
	Player  string
	Date    dates.Date
	RawDate string
	Stats   map[string]Value
}

// Stat returns the value for code and whether the column exists at all.
func (o Observation) Stat(code string) (Value, bool) {
	v, ok := o.Stats[code]
	return v, ok
}

// Game is one row of the schedule.
type Game struct {
	Date    dates.Date        `json:"date"`
	RawDate string            `json:"raw_date"`
	Home    string            `json:"home,omitempty"`
	Away    string            `json:"away,omitempty"`
	Fields  map[string]string `json:"fields"`
}

// Involves reports whether team plays in g, comparing case-insensitively.
func (g Game) Involves(team string) bool {
	team = strings.TrimSpace(team)
	if team == "" {
		return true
	}
	return strings.EqualFold(g.Home, team) || strings.EqualFold(g.Away, team)
}

// Table is a raw dataset as read from disk: a header and string rows of the
// same width.
type Table struct {
	Kind   Kind
	Source string
	Header []string
	Rows   [][]string
}

// Column returns the index of the first header matching one of names,
// case-insensitively, or -1.
func (t *Table) Column(names ...string) int {
	for _, name := range names {
		for i, h := range t.Header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}
