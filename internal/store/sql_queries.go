package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-finance-keeper/models"
)

const (
	createUser = `INSERT INTO users (user_id, login, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
    FROM users
    WHERE login = $1;`
)

const remoteEntriesTable = "entries"

var remoteEntryColumns = []string{"id", "encrypted_data", "updated_at", "server_updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectRemoteEntriesQuery selects every document of userID.
func buildSelectRemoteEntriesQuery(userID string) (string, []any, error) {
	query, args, err := psql.
		Select(remoteEntryColumns...).
		From(remoteEntriesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertRemoteEntryQuery inserts a document or replaces the stored one,
// stamping server_updated_at with the database clock.
func buildUpsertRemoteEntryQuery(userID string, record models.RemoteRecord) (string, []any, error) {
	query, args, err := psql.
		Insert(remoteEntriesTable).
		Columns("user_id", "id", "encrypted_data", "updated_at", "server_updated_at").
		Values(userID, record.ID, record.EncryptedPayload, record.UpdatedAt, sq.Expr("NOW()")).
		Suffix(`ON CONFLICT (user_id, id) DO UPDATE SET
			encrypted_data = EXCLUDED.encrypted_data,
			updated_at = EXCLUDED.updated_at,
			server_updated_at = NOW()
		RETURNING server_updated_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteRemoteEntryQuery deletes one document of userID.
func buildDeleteRemoteEntryQuery(userID, id string) (string, []any, error) {
	query, args, err := psql.
		Delete(remoteEntriesTable).
		Where(sq.And{
			sq.Eq{"user_id": userID},
			sq.Eq{"id": id},
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
