package crypto

import "errors"

var (
	// ErrDecryption is returned when a payload cannot be opened: bad
	// base64, wrong IV length, authentication tag mismatch or invalid JSON.
	ErrDecryption = errors.New("decryption failed")

	// ErrMalformedPayload is returned by DecodeEncryptedPayload when the
	// wire string is not "<ciphertext>.<iv>".
	ErrMalformedPayload = errors.New("malformed encrypted payload")

	// ErrEncryption wraps failures of the sealing side.
	ErrEncryption = errors.New("encryption failed")

	// ErrNoUserID is returned when a key is requested without a user.
	ErrNoUserID = errors.New("user id is required for key derivation")
)
