package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type localEntryRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalEntryRepository returns a [LocalEntryRepository] backed by the
// SQLite "entries" table.
func NewLocalEntryRepository(db *DB, logger *logger.Logger) LocalEntryRepository {
	return &localEntryRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var entry models.Entry
	err := row.Scan(
		&entry.ID,
		&entry.Type,
		&entry.Amount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.Synced,
		&entry.Deleted,
	)
	return entry, err
}

func entryArgs(entry models.Entry) []any {
	return []any{
		entry.ID,
		entry.Type,
		entry.Amount.String(),
		entry.CreatedAt,
		entry.UpdatedAt,
		entry.Synced,
		entry.Deleted,
	}
}

func (l *localEntryRepository) Upsert(ctx context.Context, entry models.Entry) (models.Entry, error) {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, upsertEntry, entryArgs(entry)...); err != nil {
		log.Err(err).
			Str("func", "*localEntryRepository.Upsert").
			Str("id", entry.ID).
			Msg("failed to upsert entry")
		return models.Entry{}, fmt.Errorf("%w: upsert entry (id=%s): %w", ErrStorage, entry.ID, err)
	}

	return entry, nil
}

func (l *localEntryRepository) MarkSynced(ctx context.Context, id string, updatedAt int64) error {
	log := logger.FromContext(ctx)

	var err error
	if updatedAt == 0 {
		_, err = l.DB.ExecContext(ctx, markEntrySynced, id)
	} else {
		_, err = l.DB.ExecContext(ctx, markEntrySyncedAt, updatedAt, id, updatedAt)
	}
	if err != nil {
		log.Err(err).
			Str("func", "*localEntryRepository.MarkSynced").
			Str("id", id).
			Msg("failed to mark entry as synced")
		return fmt.Errorf("%w: mark synced (id=%s): %w", ErrStorage, id, err)
	}

	return nil
}

func (l *localEntryRepository) MarkDeleted(ctx context.Context, id string, updatedAt int64) (models.Entry, error) {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*localEntryRepository.MarkDeleted").Msg("failed to begin transaction")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	entry, err := scanEntry(tx.QueryRowContext(ctx, getEntry, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		entry = models.Entry{ID: id, CreatedAt: updatedAt}
	case err != nil:
		log.Err(err).Str("func", "*localEntryRepository.MarkDeleted").Str("id", id).Msg("failed to read entry")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, err)
	}

	entry.Deleted = true
	entry.Synced = false
	entry.UpdatedAt = updatedAt

	if _, err = tx.ExecContext(ctx, upsertEntry, entryArgs(entry)...); err != nil {
		log.Err(err).Str("func", "*localEntryRepository.MarkDeleted").Str("id", id).Msg("failed to write tombstone")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*localEntryRepository.MarkDeleted").Msg("failed to commit transaction")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrCommitingTransaction, err)
	}

	return entry, nil
}

func (l *localEntryRepository) Get(ctx context.Context, id string) (models.Entry, error) {
	log := logger.FromContext(ctx)

	entry, err := scanEntry(l.DB.QueryRowContext(ctx, getEntry, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*localEntryRepository.Get").
			Str("id", id).
			Msg("failed to scan entry row")
		return models.Entry{}, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRow, err)
	}

	return entry, nil
}

func (l *localEntryRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	return l.query(ctx, "*localEntryRepository.GetAll", getAllEntries)
}

func (l *localEntryRepository) GetUnsynced(ctx context.Context) ([]models.Entry, error) {
	return l.query(ctx, "*localEntryRepository.GetUnsynced", getUnsyncedEntries)
}

func (l *localEntryRepository) query(ctx context.Context, funcName, query string) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error during rows iteration")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrScanningRows, err)
	}

	return entries, nil
}

func (l *localEntryRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, deleteEntry, id); err != nil {
		log.Err(err).
			Str("func", "*localEntryRepository.Delete").
			Str("id", id).
			Msg("failed to delete entry")
		return fmt.Errorf("%w: delete entry (id=%s): %w", ErrStorage, id, err)
	}

	return nil
}

func (l *localEntryRepository) BulkUpsert(ctx context.Context, changes []models.EntryChange) ([]models.Entry, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*localEntryRepository.BulkUpsert").Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertEntryIfUnchanged)
	if err != nil {
		log.Err(err).Str("func", "*localEntryRepository.BulkUpsert").Msg("failed to prepare statement")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrPreparingStatement, err)
	}
	defer stmt.Close()

	written := make([]models.Entry, 0, len(changes))
	for _, change := range changes {
		res, err := stmt.ExecContext(ctx, append(entryArgs(change.Entry), change.Base)...)
		if err != nil {
			log.Err(err).
				Str("func", "*localEntryRepository.BulkUpsert").
				Str("id", change.Entry.ID).
				Msg("failed to upsert entry, rolling back")
			return nil, fmt.Errorf("%w: %w (id=%s): %w", ErrStorage, ErrExecutingStatement, change.Entry.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("%w: rows affected (id=%s): %w", ErrStorage, change.Entry.ID, err)
		}
		if n > 0 {
			written = append(written, change.Entry)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*localEntryRepository.BulkUpsert").Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w: %w", ErrStorage, ErrCommitingTransaction, err)
	}

	log.Debug().Int("count", len(written)).Int("skipped", len(changes)-len(written)).Msg("entries upserted")
	return written, nil
}
