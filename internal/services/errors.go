package services

import "errors"

// Failure kinds surfaced by the services. Call sites wrap them with a
// human-readable message via fmt.Errorf("%w: ..."), so handlers can
// branch on errors.Is while the message survives for the response body.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
