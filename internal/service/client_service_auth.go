package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/internal/validators"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type clientAuthService struct {
	settings  store.SettingsRepository
	adapter   adapter.ServerAdapter
	validator validators.Validator

	mu        sync.RWMutex
	session   models.Session
	listeners map[int]func(userID *string)
	nextID    int

	logger *logger.Logger
}

// NewClientAuthService returns a [ClientAuthService] that authenticates
// through serverAdapter and keeps the session in settings.
func NewClientAuthService(settings store.SettingsRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		settings:  settings,
		adapter:   serverAdapter,
		validator: validators.NewEntryValidator(),
		listeners: make(map[int]func(userID *string)),
		logger:    logger,
	}
}

func (a *clientAuthService) Register(ctx context.Context, login, password string) (models.Session, error) {
	user := models.User{Login: login, Password: password}
	if err := a.validator.Validate(ctx, user); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	session, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return session, a.signIn(ctx, session)
}

func (a *clientAuthService) Login(ctx context.Context, login, password string) (models.Session, error) {
	user := models.User{Login: login, Password: password}
	if err := a.validator.Validate(ctx, user); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	session, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return session, a.signIn(ctx, session)
}

func (a *clientAuthService) signIn(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	if err := a.settings.SaveSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*clientAuthService.signIn").Msg("error saving session")
		return fmt.Errorf("error saving session: %w", err)
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.adapter.SetToken(session.Token)
	a.logger.Info().Str("user_id", session.UserID).Msg("signed in")

	userID := session.UserID
	a.notify(&userID)
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := a.settings.ClearSession(ctx); err != nil {
		log.Err(err).Str("func", "*clientAuthService.Logout").Msg("error clearing session")
		return fmt.Errorf("error clearing session: %w", err)
	}

	a.mu.Lock()
	wasSignedIn := a.session.IsValid()
	a.session = models.Session{}
	a.mu.Unlock()

	a.adapter.SetToken("")
	if wasSignedIn {
		a.logger.Info().Msg("signed out")
		a.notify(nil)
	}
	return nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (bool, error) {
	session, err := a.settings.GetSession(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading session: %w", err)
	}
	if !session.IsValid() {
		return false, nil
	}

	a.mu.Lock()
	a.session = session
	a.mu.Unlock()

	a.adapter.SetToken(session.Token)
	a.logger.Info().Str("user_id", session.UserID).Msg("session restored")

	userID := session.UserID
	a.notify(&userID)
	return true, nil
}

func (a *clientAuthService) CurrentUser() (models.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.session, a.session.IsValid()
}

func (a *clientAuthService) OnAuthStateChange(fn func(userID *string)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *clientAuthService) notify(userID *string) {
	a.mu.RLock()
	listeners := make([]func(*string), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.RUnlock()

	for _, fn := range listeners {
		fn(userID)
	}
}
