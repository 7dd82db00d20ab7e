package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChainService holds the client-side cryptography of the sync pipeline.
// It knows nothing about the network, the database or the session: it
// derives keys and seals or opens entry payloads.
//
// Scheme:
//
//	Salt = GenerateSalt()                      (once per device, stored locally)
//	Key  = DeriveKey(userID, Salt)             (PBKDF2-SHA256, once per session)
//	Blob = Encrypt(entry, Key)                 (AES-256-GCM, fresh IV per call)
type KeyChainService interface {
	// GenerateSalt returns 16 random bytes. The salt is not secret.
	GenerateSalt() ([]byte, error)

	// DeriveKey derives the 32-byte AES-256 key of userID from salt.
	// The derivation is deterministic for the same inputs.
	DeriveKey(userID string, salt []byte) []byte

	// Encrypt serializes plain to JSON and seals it with key.
	Encrypt(plain any, key []byte) (EncryptedPayload, error)

	// Decrypt opens ciphertext with key and iv and unmarshals the result
	// into target. Any failure is reported as ErrDecryption.
	Decrypt(ciphertext, iv string, key []byte, target any) error
}

// SaltStorage persists the device salt. It is implemented by the local
// settings repository.
type SaltStorage interface {
	// GetSalt returns the stored salt and whether it was present.
	GetSalt(ctx context.Context) ([]byte, bool, error)
	// SaveSalt replaces the stored salt.
	SaveSalt(ctx context.Context, salt []byte) error
}

// KeyManager owns the [CryptoContext] of the signed-in user.
type KeyManager interface {
	// GetOrCreateSalt returns the device salt, generating and persisting
	// one on first use.
	GetOrCreateSalt(ctx context.Context) ([]byte, error)

	// Acquire returns the context of userID, deriving the key when none is
	// cached or the cached one belongs to another user.
	Acquire(ctx context.Context, userID string) (CryptoContext, error)

	// Reset forgets the cached context.
	Reset()

	// Rotate persists a fresh salt and re-derives the key of userID.
	// Records encrypted with the previous key are not re-encrypted.
	Rotate(ctx context.Context, userID string) (CryptoContext, error)
}
