package dates

// Range is an inclusive span of days. Either end may be NoDate, meaning
// unbounded on that side.
type Range struct {
	From Date
	To   Date
}

// Bounded reports whether at least one end is set.
func (r Range) Bounded() bool { return r.From.Valid() || r.To.Valid() }

// Inverted reports whether both ends are set and From is after To.
func (r Range) Inverted() bool {
	return r.From.Valid() && r.To.Valid() && r.From.After(r.To)
}

// Contains reports whether d falls inside r. An unbounded range contains
// every value, NoDate included; a bounded one never contains NoDate.
func (r Range) Contains(d Date) bool {
	if !r.Bounded() {
		return true
	}
	if !d.Valid() {
		return false
	}
	if r.From.Valid() && d.Before(r.From) {
		return false
	}
	if r.To.Valid() && d.After(r.To) {
		return false
	}
	return true
}
