package service

import "strings"

// Polarity decides whether a stat is classified reversed, that is whether a
// lower value is the favorable outcome.
type Polarity struct {
	reversed map[string]struct{}
}

// NewPolarity builds a Polarity from stat codes, matched case-insensitively.
func NewPolarity(codes []string) Polarity {
	p := Polarity{reversed: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			p.reversed[c] = struct{}{}
		}
	}
	return p
}

// Reversed reports the default polarity of code.
func (p Polarity) Reversed(code string) bool {
	_, ok := p.reversed[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Resolve returns the explicit choice when given, else the default.
func (p Polarity) Resolve(code string, explicit *bool) (reversed, isDefault bool) {
	if explicit != nil {
		return *explicit, false
	}
	return p.Reversed(code), true
}

// Len returns the number of reversed stats.
func (p Polarity) Len() int { return len(p.reversed) }
