package service

import (
	"errors"

	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrUnauthorizedAccessToDifferentUserData = errors.New("access to data of a different user")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrServiceUnavailable    = errors.New("service unavailable")

	ErrValidationNoUserID     = errors.New("no user ID was given")
	ErrValidationNoEntryID    = errors.New("no entry ID was given")
	ErrValidationNoEntryData  = errors.New("no encrypted entry data was given")
	ErrValidationEntryIDMatch = errors.New("entry ID in path and body differ")
)

// Client-side errors.
var (
	// ErrNotAuthenticated is returned by sync operations started without a
	// signed-in session. The scheduler never retries it.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNetwork is the remote store being unreachable.
	ErrNetwork = adapter.ErrNetwork

	// ErrStorage is a failed local write; the caller must surface it.
	ErrStorage = store.ErrStorage

	// ErrEntryNotFound is returned for operations on unknown entry ids.
	ErrEntryNotFound = store.ErrEntryNotFound

	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	// ErrInvalidEntry is returned by SaveEntry for drafts without a type.
	ErrInvalidEntry = errors.New("invalid entry")
)
