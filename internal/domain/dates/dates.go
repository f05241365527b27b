// Package dates turns the date strings found in game logs and schedules into
// calendar days.
//
// Game logs carry no year ("Mar 28", "Mar_30", "Apr 1 (1)") and are often
// damaged by a bad round trip through Latin-1, so a non-breaking space shows
// up as "Â " or as a lone 0xA0 byte. Schedules use month-first numeric
// dates. Normalize accepts all of these and never fails loudly: anything it
// cannot read becomes NoDate.
package dates

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical textual form of a Date.
const Layout = "2006-01-02"

// Date is a calendar day in UTC. The zero value is NoDate.
type Date struct {
	t time.Time
}

// NoDate marks a value that could not be parsed.
var NoDate = Date{}

// Of builds a Date. Out-of-range components yield NoDate instead of being
// normalized into the next month.
func Of(year int, month time.Month, day int) Date {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return NoDate
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return NoDate
	}
	return Date{t: t}
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return NoDate
	}
	return Of(t.Year(), t.Month(), t.Day())
}

// Valid reports whether d holds a real day.
func (d Date) Valid() bool { return !d.t.IsZero() }

// Time returns midnight UTC of d, or the zero time for NoDate.
func (d Date) Time() time.Time { return d.t }

// Year returns the year of d, 0 for NoDate.
func (d Date) Year() int {
	if !d.Valid() {
		return 0
	}
	return d.t.Year()
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// String renders d as YYYY-MM-DD, or "" for NoDate.
func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	return d.t.Format(Layout)
}

// MarshalJSON writes NoDate as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON reads YYYY-MM-DD or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = NoDate
		return nil
	}
	t, err := time.Parse(Layout, *s)
	if err != nil {
		return err
	}
	*d = FromTime(t)
	return nil
}

var (
	// Encoding debris seen in scraped game logs. The two-rune forms must
	// come before the bare NBSP.
	artifacts = strings.NewReplacer(
		"\u00c2\u00a0", " ",
		"\u00c2 ", " ",
		"\u00a0", " ",
		"\ufffd", " ",
		"_", " ",
	)

	monthFirst = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	isoDay     = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	gameSuffix = regexp.MustCompile(`\s*\(\d\)$`)
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true, "friday": true,
	"saturday": true, "sunday": true,
}

// Clean removes encoding artifacts and underscores and collapses whitespace.
func Clean(raw string) string {
	s := strings.ToValidUTF8(raw, " ")
	s = artifacts.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Normalize parses raw into a Date. Month-day tokens take their year from
// referenceYear; numeric dates carry their own.
func Normalize(raw string, referenceYear int) Date {
	s := Clean(raw)
	if s == "" {
		return NoDate
	}

	switch {
	case monthFirst.MatchString(s):
		return parseLayout("1/2/2006", s)
	case isoDay.MatchString(s):
		return parseLayout("2006-1-2", s)
	}
	return parseMonthDay(s, referenceYear)
}

func parseLayout(layout, s string) Date {
	t, err := time.Parse(layout, s)
	if err != nil {
		return NoDate
	}
	return FromTime(t)
}

// parseMonthDay reads "<Mon> <D>", tolerating a leading weekday and a
// doubleheader marker such as "(2)".
func parseMonthDay(s string, year int) Date {
	s = gameSuffix.ReplaceAllString(s, "")
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) == 3 && weekdays[strings.ToLower(fields[0])] {
		fields = fields[1:]
	}
	if len(fields) != 2 {
		return NoDate
	}

	month, ok := months[strings.ToLower(strings.TrimSuffix(fields[0], "."))]
	if !ok {
		return NoDate
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return NoDate
	}
	return Of(year, month, day)
}
