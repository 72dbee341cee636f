package domain

import "errors"

var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrEmptyItinerary = errors.New("itinerary has no segments")
	ErrUnknownFilter  = errors.New("unknown filter")
	ErrInvalidHour    = errors.New("hour must be between 0 and 23")
	ErrInvalidGround  = errors.New("ground time hours out of range")
	ErrMissingParam   = errors.New("missing filter parameter")
)
