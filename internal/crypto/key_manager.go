package crypto

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

// CryptoContext is the key material of one signed-in user. It is read-only
// once derived.
type CryptoContext struct {
	UserID string
	Salt   []byte
	Key    []byte
}

// IsZero reports whether c carries no key.
func (c CryptoContext) IsZero() bool {
	return len(c.Key) == 0
}

type keyManager struct {
	keyChain KeyChainService
	salts    SaltStorage
	logger   *logger.Logger

	mu      sync.Mutex
	current CryptoContext
}

// NewKeyManager returns a [KeyManager] deriving keys with keyChain and
// keeping the device salt in salts.
func NewKeyManager(keyChain KeyChainService, salts SaltStorage, logger *logger.Logger) KeyManager {
	return &keyManager{
		keyChain: keyChain,
		salts:    salts,
		logger:   logger,
	}
}

func (m *keyManager) GetOrCreateSalt(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.getOrCreateSalt(ctx)
}

func (m *keyManager) getOrCreateSalt(ctx context.Context) ([]byte, error) {
	log := logger.FromContext(ctx)

	salt, found, err := m.salts.GetSalt(ctx)
	if err != nil {
		log.Err(err).Str("func", "*keyManager.getOrCreateSalt").Msg("error reading salt")
		return nil, fmt.Errorf("error reading salt: %w", err)
	}
	if found && len(salt) > 0 {
		return salt, nil
	}

	salt, err = m.keyChain.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("error generating salt: %w", err)
	}

	if err = m.salts.SaveSalt(ctx, salt); err != nil {
		log.Err(err).Str("func", "*keyManager.getOrCreateSalt").Msg("error saving salt")
		return nil, fmt.Errorf("error saving salt: %w", err)
	}

	m.logger.Info().Msg("generated new device salt")
	return salt, nil
}

func (m *keyManager) Acquire(ctx context.Context, userID string) (CryptoContext, error) {
	if userID == "" {
		return CryptoContext{}, ErrNoUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.current.IsZero() && m.current.UserID == userID {
		return m.current, nil
	}

	salt, err := m.getOrCreateSalt(ctx)
	if err != nil {
		return CryptoContext{}, err
	}

	m.current = CryptoContext{
		UserID: userID,
		Salt:   salt,
		Key:    m.keyChain.DeriveKey(userID, salt),
	}
	m.logger.Debug().Str("user_id", userID).Msg("derived encryption key")

	return m.current, nil
}

func (m *keyManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = CryptoContext{}
}

func (m *keyManager) Rotate(ctx context.Context, userID string) (CryptoContext, error) {
	if userID == "" {
		return CryptoContext{}, ErrNoUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	salt, err := m.keyChain.GenerateSalt()
	if err != nil {
		return CryptoContext{}, fmt.Errorf("error generating salt: %w", err)
	}

	if err = m.salts.SaveSalt(ctx, salt); err != nil {
		return CryptoContext{}, fmt.Errorf("error saving salt: %w", err)
	}

	m.current = CryptoContext{
		UserID: userID,
		Salt:   salt,
		Key:    m.keyChain.DeriveKey(userID, salt),
	}
	m.logger.Warn().Str("user_id", userID).Msg("encryption key rotated")

	return m.current, nil
}
