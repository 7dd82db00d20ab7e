// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type remoteEntryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRemoteEntryRepository constructs a [RemoteEntryRepository] backed by
// the PostgreSQL "entries" table.
func NewRemoteEntryRepository(db *DB, logger *logger.Logger) RemoteEntryRepository {
	logger.Debug().Msg("creating remote entry repository")
	return &remoteEntryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *remoteEntryRepository) Put(ctx context.Context, userID string, record models.RemoteRecord) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertRemoteEntryQuery(userID, record)
	if err != nil {
		log.Err(err).Str("func", "*remoteEntryRepository.Put").Msg("error building query")
		return models.RemoteRecord{}, err
	}

	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(&record.ServerUpdatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "*remoteEntryRepository.Put").
			Str("user_id", userID).
			Str("id", record.ID).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error upserting entry")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

func (r *remoteEntryRepository) Delete(ctx context.Context, userID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRemoteEntryQuery(userID, id)
	if err != nil {
		log.Err(err).Str("func", "*remoteEntryRepository.Delete").Msg("error building query")
		return err
	}

	// zero affected rows is fine: deletes are idempotent
	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*remoteEntryRepository.Delete").
			Str("user_id", userID).
			Str("id", id).
			Bool("retryable", r.db.IsRetryable(err)).
			Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *remoteEntryRepository) GetAll(ctx context.Context, userID string) ([]models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRemoteEntriesQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*remoteEntryRepository.GetAll").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*remoteEntryRepository.GetAll").Str("user_id", userID).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.RemoteRecord, 0)
	for rows.Next() {
		var record models.RemoteRecord
		if err = rows.Scan(&record.ID, &record.EncryptedPayload, &record.UpdatedAt, &record.ServerUpdatedAt); err != nil {
			log.Err(err).Str("func", "*remoteEntryRepository.GetAll").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*remoteEntryRepository.GetAll").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
