package crypto

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySaltStorage struct {
	mu      sync.Mutex
	salt    []byte
	saves   int
	getErr  error
	saveErr error
}

func (s *memorySaltStorage) GetSalt(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	return s.salt, s.salt != nil, nil
}

func (s *memorySaltStorage) SaveSalt(_ context.Context, salt []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.salt = append([]byte(nil), salt...)
	s.saves++
	return nil
}

func newTestKeyManager(salts SaltStorage) KeyManager {
	return NewKeyManager(&keyChainService{iterations: 10}, salts, logger.Nop())
}

func TestKeyManager_GetOrCreateSalt(t *testing.T) {
	ctx := context.Background()
	salts := &memorySaltStorage{}
	km := newTestKeyManager(salts)

	first, err := km.GetOrCreateSalt(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 16)
	assert.Equal(t, 1, salts.saves)

	second, err := km.GetOrCreateSalt(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "existing salt must be reused")
	assert.Equal(t, 1, salts.saves)
}

func TestKeyManager_GetOrCreateSalt_StorageErrors(t *testing.T) {
	ctx := context.Background()

	_, err := newTestKeyManager(&memorySaltStorage{getErr: assert.AnError}).GetOrCreateSalt(ctx)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = newTestKeyManager(&memorySaltStorage{saveErr: assert.AnError}).GetOrCreateSalt(ctx)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestKeyManager_Acquire(t *testing.T) {
	ctx := context.Background()
	salts := &memorySaltStorage{}
	km := newTestKeyManager(salts)

	alice, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", alice.UserID)
	assert.Len(t, alice.Key, 32)
	assert.Equal(t, salts.salt, alice.Salt)

	again, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.Key, again.Key)

	bob, err := km.Acquire(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.UserID)
	assert.NotEqual(t, alice.Key, bob.Key, "another user forces re-derivation")
	assert.Equal(t, alice.Salt, bob.Salt, "salt is per device")
}

func TestKeyManager_Acquire_NoUser(t *testing.T) {
	_, err := newTestKeyManager(&memorySaltStorage{}).Acquire(context.Background(), "")
	assert.True(t, errors.Is(err, ErrNoUserID))
}

func TestKeyManager_ResetDerivesSameKey(t *testing.T) {
	ctx := context.Background()
	km := newTestKeyManager(&memorySaltStorage{})

	before, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)

	km.Reset()

	after, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before.Key, after.Key, "same user and salt give the same key")
}

func TestKeyManager_Rotate(t *testing.T) {
	ctx := context.Background()
	salts := &memorySaltStorage{}
	km := newTestKeyManager(salts)

	before, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)

	rotated, err := km.Rotate(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, before.Salt, rotated.Salt)
	assert.NotEqual(t, before.Key, rotated.Key)
	assert.Equal(t, rotated.Salt, salts.salt, "new salt is persisted")

	current, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, rotated.Key, current.Key)
}

func TestKeyManager_Rotate_SaveFailureKeepsOldKey(t *testing.T) {
	ctx := context.Background()
	salts := &memorySaltStorage{}
	km := newTestKeyManager(salts)

	before, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)

	salts.saveErr = assert.AnError
	_, err = km.Rotate(ctx, "alice")
	require.ErrorIs(t, err, assert.AnError)

	current, err := km.Acquire(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before.Key, current.Key)
}
