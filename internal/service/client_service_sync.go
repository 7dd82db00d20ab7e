// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/crypto"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/shopspring/decimal"
)

// entryPayload is the plaintext sealed into RemoteRecord.EncryptedPayload.
type entryPayload struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
}

var errPayloadIDMismatch = errors.New("payload id does not match record id")

type syncEngine struct {
	entries  store.LocalEntryRepository
	remote   RemoteRepository
	keys     crypto.KeyManager
	keyChain crypto.KeyChainService
	sessions SessionProvider
	now      func() time.Time

	// inFlight serializes cycles and key rotation.
	inFlight sync.Mutex

	stateMu sync.RWMutex
	state   SyncState

	logger *logger.Logger
}

// NewSyncEngine returns a [SyncEngine] reconciling entries with remote for
// the user reported by sessions.
func NewSyncEngine(
	entries store.LocalEntryRepository,
	remote RemoteRepository,
	keys crypto.KeyManager,
	keyChain crypto.KeyChainService,
	sessions SessionProvider,
	logger *logger.Logger,
) SyncEngine {
	return &syncEngine{
		entries:  entries,
		remote:   remote,
		keys:     keys,
		keyChain: keyChain,
		sessions: sessions,
		now:      time.Now,
		state:    SyncStateIdle,
		logger:   logger,
	}
}

func (e *syncEngine) SyncAll(ctx context.Context) (models.SyncReport, error) {
	session, ok := e.sessions.CurrentUser()
	if !ok {
		return models.SyncReport{}, ErrNotAuthenticated
	}

	e.inFlight.Lock()
	defer e.inFlight.Unlock()

	report, err := e.syncAll(ctx, session.UserID)
	if err != nil {
		e.setState(SyncStateFailed)
		return report, err
	}

	e.setState(SyncStateIdle)
	if !report.Changed() && report.UploadFailures+report.DecryptFailures == 0 {
		e.logger.Debug().Str("user_id", session.UserID).Msg("sync cycle finished, nothing changed")
		return report, nil
	}
	e.logger.Info().
		Str("user_id", session.UserID).
		Int("uploaded", report.Uploaded).
		Int("deleted_remotely", report.DeletedRemotely).
		Int("upload_failures", report.UploadFailures).
		Int("downloaded", report.Downloaded).
		Int("decrypt_failures", report.DecryptFailures).
		Int("remotely_deleted", report.RemotelyDeleted).
		Msg("sync cycle finished")
	return report, nil
}

func (e *syncEngine) syncAll(ctx context.Context, userID string) (models.SyncReport, error) {
	var report models.SyncReport

	cc, err := e.keys.Acquire(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("error acquiring encryption key: %w", err)
	}

	e.setState(SyncStateUploading)
	if err = e.upload(ctx, userID, cc.Key, &report); err != nil {
		return report, err
	}

	e.setState(SyncStateDownloading)
	records, err := e.remote.GetAll(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncEngine.syncAll").Msg("error downloading snapshot")
		if isUnauthorized(err) {
			return report, fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
		}
		return report, fmt.Errorf("%w: download snapshot: %w", ErrNetwork, err)
	}

	e.setState(SyncStateMerging)
	if err = e.merge(ctx, cc.Key, records, &report); err != nil {
		return report, err
	}

	return report, nil
}

// upload pushes every unsynced entry. Failures of single entries are counted
// and leave the entry unsynced; only a rejected session or a cancelled
// context abort the phase.
func (e *syncEngine) upload(ctx context.Context, userID string, key []byte, report *models.SyncReport) error {
	log := logger.FromContext(ctx)

	unsynced, err := e.entries.GetUnsynced(ctx)
	if err != nil {
		log.Err(err).Str("func", "*syncEngine.upload").Msg("error reading unsynced entries")
		return fmt.Errorf("error reading unsynced entries: %w", err)
	}

	for _, entry := range unsynced {
		if err = ctx.Err(); err != nil {
			return err
		}

		if err = e.uploadEntry(ctx, userID, entry, key); err != nil {
			if isUnauthorized(err) {
				return fmt.Errorf("%w: %w", ErrNotAuthenticated, err)
			}

			log.Err(err).
				Str("func", "*syncEngine.upload").
				Str("id", entry.ID).
				Bool("deleted", entry.Deleted).
				Msg("entry upload failed")
			report.UploadFailures++
			continue
		}

		if entry.Deleted {
			report.DeletedRemotely++
		} else {
			report.Uploaded++
		}
	}

	return nil
}

func (e *syncEngine) uploadEntry(ctx context.Context, userID string, entry models.Entry, key []byte) error {
	if entry.Deleted {
		if err := e.remote.Delete(ctx, userID, entry.ID); err != nil {
			return fmt.Errorf("remote delete: %w", err)
		}
		return e.entries.MarkSynced(ctx, entry.ID, entry.UpdatedAt)
	}

	payload, err := e.keyChain.Encrypt(entryPayload{
		ID:        entry.ID,
		Type:      entry.Type,
		Amount:    entry.Amount,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}, key)
	if err != nil {
		return err
	}

	record := models.RemoteRecord{
		ID:               entry.ID,
		EncryptedPayload: payload.String(),
		UpdatedAt:        entry.UpdatedAt,
	}
	if err = e.remote.Put(ctx, userID, record); err != nil {
		return fmt.Errorf("remote put: %w", err)
	}

	return e.entries.MarkSynced(ctx, entry.ID, entry.UpdatedAt)
}

// merge decodes the snapshot, reconciles it with the local store and writes
// the changed entries in one batch. Each write is conditional on the local
// revision it was computed from; an entry edited since GetAll keeps the edit
// and stays unsynced for the next cycle.
func (e *syncEngine) merge(ctx context.Context, key []byte, records []models.RemoteRecord, report *models.SyncReport) error {
	log := logger.FromContext(ctx)

	local, err := e.entries.GetAll(ctx)
	if err != nil {
		log.Err(err).Str("func", "*syncEngine.merge").Msg("error reading local entries")
		return fmt.Errorf("error reading local entries: %w", err)
	}

	present := make(map[string]struct{}, len(records))
	decoded := make([]models.Entry, 0, len(records))
	for _, record := range records {
		present[record.ID] = struct{}{}

		entry, err := e.decode(record, key)
		if err != nil {
			log.Warn().Err(err).Str("func", "*syncEngine.merge").Str("id", record.ID).Msg("skipping undecryptable record")
			report.DecryptFailures++
			continue
		}
		decoded = append(decoded, entry)
	}

	result := mergeSnapshot(local, decoded, present, e.now().UnixMilli())
	if len(result.Changed) == 0 {
		return nil
	}

	base := make(map[string]int64, len(local))
	for _, entry := range local {
		base[entry.ID] = entry.UpdatedAt
	}
	changes := make([]models.EntryChange, 0, len(result.Changed))
	for _, entry := range result.Changed {
		changes = append(changes, models.EntryChange{Entry: entry, Base: base[entry.ID]})
	}

	written, err := e.entries.BulkUpsert(ctx, changes)
	if err != nil {
		log.Err(err).Str("func", "*syncEngine.merge").Int("changed", len(changes)).Msg("error writing merge result")
		return fmt.Errorf("error writing merge result: %w", err)
	}
	if skipped := len(changes) - len(written); skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("merge writes skipped, local entries changed during the cycle")
	}

	for _, entry := range written {
		if entry.Synced {
			report.Downloaded++
		} else {
			report.RemotelyDeleted++
		}
	}
	return nil
}

// decode opens a remote record. The record id and its clear updatedAt are
// authoritative; the sealed copies only have to agree on the id.
func (e *syncEngine) decode(record models.RemoteRecord, key []byte) (models.Entry, error) {
	ciphertext, iv, err := crypto.DecodeEncryptedPayload(record.EncryptedPayload)
	if err != nil {
		return models.Entry{}, err
	}

	var payload entryPayload
	if err = e.keyChain.Decrypt(ciphertext, iv, key, &payload); err != nil {
		return models.Entry{}, err
	}
	if payload.ID != "" && payload.ID != record.ID {
		return models.Entry{}, fmt.Errorf("%w: %q", errPayloadIDMismatch, payload.ID)
	}

	return models.Entry{
		ID:        record.ID,
		Type:      payload.Type,
		Amount:    payload.Amount,
		CreatedAt: payload.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (e *syncEngine) State() SyncState {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.state
}

func (e *syncEngine) setState(state SyncState) {
	e.stateMu.Lock()
	e.state = state
	e.stateMu.Unlock()
}

func (e *syncEngine) RotateKey(ctx context.Context) error {
	session, ok := e.sessions.CurrentUser()
	if !ok {
		return ErrNotAuthenticated
	}

	e.inFlight.Lock()
	defer e.inFlight.Unlock()

	if _, err := e.keys.Rotate(ctx, session.UserID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*syncEngine.RotateKey").Msg("error rotating key")
		return fmt.Errorf("error rotating key: %w", err)
	}
	return nil
}

func (e *syncEngine) ResetKey() {
	e.keys.Reset()
}
