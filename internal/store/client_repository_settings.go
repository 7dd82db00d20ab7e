package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type settingsRepository struct {
	*DB
	logger *logger.Logger
}

// NewSettingsRepository returns a [SettingsRepository] backed by the SQLite
// "settings" key/value table.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	return &settingsRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *settingsRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, getSetting, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.get").Str("key", key).Msg("failed to read setting")
		return "", false, fmt.Errorf("%w: read setting %q: %w", ErrStorage, key, err)
	}

	return value, true, nil
}

func (s *settingsRepository) set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, saveSetting, key, value); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.set").Str("key", key).Msg("failed to save setting")
		return fmt.Errorf("%w: save setting %q: %w", ErrStorage, key, err)
	}

	return nil
}

func (s *settingsRepository) GetSalt(ctx context.Context) ([]byte, bool, error) {
	value, found, err := s.get(ctx, settingSalt)
	if err != nil || !found {
		return nil, false, err
	}

	return decodeSalt(value)
}

func (s *settingsRepository) SaveSalt(ctx context.Context, salt []byte) error {
	return s.set(ctx, settingSalt, base64.StdEncoding.EncodeToString(salt))
}

func (s *settingsRepository) GetSession(ctx context.Context) (models.Session, error) {
	value, found, err := s.get(ctx, settingSession)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, ErrLocalSessionNotFound
	}

	return decodeSession(value)
}

func (s *settingsRepository) SaveSession(ctx context.Context, session models.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", ErrStorage, err)
	}

	return s.set(ctx, settingSession, string(value))
}

func (s *settingsRepository) ClearSession(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, deleteSetting, settingSession); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*settingsRepository.ClearSession").Msg("failed to clear session")
		return fmt.Errorf("%w: clear session: %w", ErrStorage, err)
	}

	return nil
}

func decodeSalt(value string) ([]byte, bool, error) {
	salt, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, false, fmt.Errorf("%w: decode salt: %w", ErrStorage, err)
	}

	return salt, true, nil
}

func decodeSession(value string) (models.Session, error) {
	var session models.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode session: %w", ErrStorage, err)
	}
	if !session.IsValid() {
		return models.Session{}, ErrLocalSessionNotFound
	}

	return session, nil
}
