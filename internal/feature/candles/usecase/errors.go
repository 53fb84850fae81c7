package usecase

import "errors"

var (
	// ErrEmptySymbol is returned when a candle query has no symbol.
	ErrEmptySymbol = errors.New("symbol is required")

	// ErrInvalidInterval is returned for intervals other than 1day, 1week and 1month.
	ErrInvalidInterval = errors.New("invalid interval")
)
