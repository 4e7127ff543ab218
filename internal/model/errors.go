package model

import "errors"

var (
	// ErrMalformedRow marks a raw row that was skipped during a load.
	ErrMalformedRow = errors.New("malformed row")
	// ErrEmptySeries is returned when there is nothing to draw.
	ErrEmptySeries = errors.New("empty series")
	// ErrInsufficientData is returned by indicators given zero records.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidConfiguration is fatal at setup and surfaced before any rendering.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
