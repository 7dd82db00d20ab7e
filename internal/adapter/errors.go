package adapter

import "errors"

var (
	// ErrNetwork marks a request that never produced a usable answer: the
	// remote store is unreachable, timed out or sits behind a failing gateway.
	ErrNetwork = errors.New("network error")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)
