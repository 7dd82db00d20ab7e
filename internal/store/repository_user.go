package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/jackc/pgerrcode"
)

// userRepository keeps accounts in the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository returns the Postgres [UserRepository].
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the stored row. A taken login yields
// [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	row := r.db.QueryRowContext(ctx, createUser, user.UserID, user.Login, user.Password)

	created, err := scanUser(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, userError(err)
	}

	return created, nil
}

// FindUserByLogin returns the account registered under login, or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	row := r.db.QueryRowContext(ctx, findUserByLogin, login)

	found, err := scanUser(row)
	if err != nil {
		err = userError(err)
		if !errors.Is(err, ErrNoUserWasFound) {
			logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("error selecting user")
		}
		return models.User{}, err
	}

	return found, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Login, &u.Password, &u.CreatedAt)
	return u, err
}

// userError translates driver errors of the users table into store errors.
func userError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoUserWasFound
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrLoginAlreadyExists
	case pgerrcode.NoDataFound:
		return ErrNoUserWasFound
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}
