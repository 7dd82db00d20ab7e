package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
	"github.com/MKhiriev/go-finance-keeper/models"
)

// authService issues accounts and JWTs for the ledger API. Passwords are
// stored as HMAC-SHA256 digests keyed by cfg.PasswordHashKey.
type authService struct {
	users    store.UserRepository
	ids      *utils.UUIDGenerator
	hashKey  string
	signKey  string
	issuer   string
	lifetime time.Duration
	logger   *logger.Logger
}

// NewAuthService constructs the server AuthService. All state is read-only
// after construction.
func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:    users,
		ids:      utils.NewUUIDGenerator(),
		hashKey:  cfg.PasswordHashKey,
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		lifetime: cfg.TokenDuration,
		logger:   logger,
	}
}

// RegisterUser stores a new account under a fresh UUIDv7 id.
// A taken login surfaces as store.ErrLoginAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	if err := checkCredentials(ctx, user); err != nil {
		return models.User{}, err
	}

	user.UserID = a.ids.Generate()
	user.Password = utils.HashString(user.Password, a.hashKey)

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login returns the stored account when the password digest matches.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	if err := checkCredentials(ctx, user); err != nil {
		return models.User{}, err
	}

	log := logger.FromContext(ctx)
	found, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.MatchesHash(user.Password, a.hashKey, found.Password) {
		log.Warn().Str("user_id", found.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

func (a *authService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.issuer, user.UserID, a.lifetime, a.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken verifies signature, expiry and issuer. Every failure collapses
// to ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, raw string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(raw, a.signKey, a.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func checkCredentials(ctx context.Context, user models.User) error {
	if strings.TrimSpace(user.Login) == "" || user.Password == "" {
		logger.FromContext(ctx).Error().Str("login", user.Login).Msg("invalid user data provided")
		return ErrInvalidDataProvided
	}
	return nil
}
