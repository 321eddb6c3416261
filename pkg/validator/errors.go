package validator

import "errors"

// The messages double as the plain-text 400 response bodies
var (
	ErrEmptyURL   = errors.New("URL cannot be empty")
	ErrInvalidURL = errors.New("Invalid URL") //nolint:staticcheck // exact response text
)
