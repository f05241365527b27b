package classify

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrEmpty = errors.New("no values to classify")
)
