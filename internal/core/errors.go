package core

import "errors"

var (
	// Frame decoding errors
	ErrFrameTruncated      = errors.New("strix: frame truncated")
	ErrInvalidHeaderLength = errors.New("strix: invalid header length")

	// Capture source errors
	ErrSourceNotStarted = errors.New("strix: source not started")
	ErrUnknownSource    = errors.New("strix: unknown source type")

	// Configuration errors
	ErrConfigInvalid = errors.New("strix: invalid configuration")
)
