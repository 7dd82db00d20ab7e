// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFIterations is the PBKDF2 work factor. Changing it changes every
	// derived key and makes existing remote records unreadable.
	KDFIterations = 150000

	saltLength = 16
	keyLength  = 32
	ivLength   = 12
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	iterations int
}

// NewKeyChainService constructs a [KeyChainService] deriving keys with
// PBKDF2-HMAC-SHA256 and [KDFIterations] rounds.
func NewKeyChainService() KeyChainService {
	return &keyChainService{iterations: KDFIterations}
}

// GenerateSalt implements [KeyChainService]. It reads 16 random bytes from
// the OS CSPRNG.
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService].
//
// The PBKDF2 password is userID + ":" + base64(salt) and the PBKDF2 salt is
// the raw salt bytes, so the same device salt yields different keys for
// different users.
func (k *keyChainService) DeriveKey(userID string, salt []byte) []byte {
	password := userID + ":" + base64.StdEncoding.EncodeToString(salt)
	return pbkdf2.Key([]byte(password), salt, k.iterations, keyLength, sha256.New)
}

// Encrypt implements [KeyChainService]. It marshals plain to JSON and seals
// it with AES-256-GCM under a fresh random 96-bit IV. Ciphertext (with the
// appended tag) and IV are returned base64-encoded.
func (k *keyChainService) Encrypt(plain any, key []byte) (EncryptedPayload, error) {
	plaintext, err := json.Marshal(plain)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: marshal data: %w", ErrEncryption, err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: %w", ErrEncryption, err)
	}

	iv := make([]byte, ivLength)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return EncryptedPayload{}, fmt.Errorf("%w: generate iv: %w", ErrEncryption, err)
	}

	ciphertext := gcm.Seal(nil, iv, plaintext, nil)

	return EncryptedPayload{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt implements [KeyChainService]. target must be a non-nil pointer,
// identical to the requirement of [encoding/json.Unmarshal].
func (k *keyChainService) Decrypt(ciphertext, iv string, key []byte, target any) error {
	ct, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return fmt.Errorf("%w: decode ciphertext: %w", ErrDecryption, err)
	}

	nonce, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return fmt.Errorf("%w: decode iv: %w", ErrDecryption, err)
	}
	if len(nonce) != ivLength {
		return fmt.Errorf("%w: iv length %d", ErrDecryption, len(nonce))
	}

	gcm, err := newGCM(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		// wrong key or tampered ciphertext
		return fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("%w: unmarshal data: %w", ErrDecryption, err)
	}

	return nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
