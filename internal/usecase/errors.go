package usecase

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAggregationFailed = errors.New("failed to fetch jobs")
	ErrUpstream          = errors.New("upstream service failed")
	ErrUnavailable       = errors.New("feature unavailable")
)
