package constants

import "errors"

// Configuration errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated, use 'ywm login' or set YWM_TOKEN")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
	ErrEmptyToken       = errors.New("token must not be empty")
	ErrInvalidOutput    = errors.New("invalid output format")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Validation errors.
var (
	ErrInvalidVerificationType = errors.New("invalid verification type")
	ErrInvalidDate             = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidLimit            = errors.New("limit is out of range")
	ErrInvalidIndicator        = errors.New("invalid indicator")
	ErrInvalidOrderBy          = errors.New("invalid order, expected TOTAL_SHOWS or TOTAL_CLICKS")
)
