package analytics

import "errors"

var (
	// ErrNoData means an empty value set was supplied where at least one
	// measurement is required.
	ErrNoData = errors.New("no readings available for analysis")

	// ErrInsufficientData means fewer data points, series or entries were
	// supplied than the operation requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput means a supplied value was not usable, for example a
	// NaN or infinite measurement.
	ErrInvalidInput = errors.New("invalid input")
)
