package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidEntryID     = errors.New("invalid entry id")
	ErrEmptyEncryptedData = errors.New("encrypted data is required")
	ErrInvalidUpdatedAt   = errors.New("invalid updatedAt")
	ErrEmptyEntryType     = errors.New("entry type is required")
	ErrEntryTypeTooLong   = errors.New("entry type is too long")
	ErrInvalidCreatedAt   = errors.New("invalid createdAt")
	ErrEmptyLogin         = errors.New("login is required")
	ErrEmptyPassword      = errors.New("password is required")
)
