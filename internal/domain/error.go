package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrSessionBusy        = errors.New("a submission is already in flight for this session")
	ErrGatewayUnavailable = errors.New("classifier gateway unavailable")
	ErrMalformedVerdict   = errors.New("malformed classifier verdict")
)
