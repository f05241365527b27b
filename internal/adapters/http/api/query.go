package api

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/mlbview/internal/domain/dates"
)

// dateParser reads query dates with the Date Normalizer.
type dateParser struct {
	year int
}

// date parses key. An absent or blank value is NoDate; anything else that
// does not parse is a bad request.
func (p dateParser) date(q url.Values, key string) (dates.Date, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return dates.NoDate, nil
	}
	d := dates.Normalize(raw, p.year)
	if !d.Valid() {
		return dates.NoDate, fmt.Errorf("%w: %s=%q is not a date", ErrBadRequest, key, raw)
	}
	return d, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s=%q is not a finite number", ErrBadRequest, key, raw)
	}
	return &f, nil
}

func optionalBool(q url.Values, key string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q is not a boolean", ErrBadRequest, key, raw)
	}
	return &b, nil
}

// optionalInt returns 0 when key is absent.
func optionalInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s=%q must be a positive integer", ErrBadRequest, key, raw)
	}
	return n, nil
}
