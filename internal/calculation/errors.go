package calculation

import "errors"

var (
	// ErrInvalidInput is wrapped by every calculator validation failure.
	ErrInvalidInput = errors.New("invalid calculator input")
	// ErrUnsupportedGSTRate is returned for a rate outside the notified GST slabs.
	ErrUnsupportedGSTRate = errors.New("unsupported GST rate")
)
