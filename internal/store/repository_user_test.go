package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var userColumns = []string{"user_id", "login", "password_hash", "created_at"}

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	return NewUserRepository(NewDB(db, DialectPostgres, l), l), mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		UserID:   "5f0c6f7e-8a3b-4f8e-9d0c-1a2b3c4d5e6f",
		Login:    "john",
		Password: "hash",
	}
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.UserID, user.Login, user.Password).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(user.UserID, user.Login, user.Password, now))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != user.UserID {
		t.Errorf("expected UserID=%s, got %s", user.UserID, created.UserID)
	}
	if created.Login != user.Login {
		t.Errorf("expected login %s, got %s", user.Login, created.Login)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if err == nil || errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestFindUserByLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT user_id, login, password_hash, created_at FROM users").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow("u-1", "john", "hash", now))

	user, err := repo.FindUserByLogin(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != "u-1" || user.Password != "hash" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByLogin_NoDataFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost").
		WillReturnError(pgError(pgerrcode.NoDataFound))

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john").
		WillReturnError(errors.New("boom"))

	_, err := repo.FindUserByLogin(context.Background(), "john")
	if err == nil || errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected generic error, got %v", err)
	}
}
