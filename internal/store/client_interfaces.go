package store

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock -exclude_interfaces=LocalStorage

// LocalEntryRepository is the device-resident ledger of sync-tracked entries.
// Every failure is wrapped with [ErrStorage] and leaves prior state intact.
type LocalEntryRepository interface {
	// Upsert overwrites the entry with the same id.
	Upsert(ctx context.Context, entry models.Entry) (models.Entry, error)
	// MarkSynced flags the entry as synced. A non-zero updatedAt is stored
	// as well, unless a newer local revision was written meanwhile, in which
	// case the entry stays unsynced. A missing id is a no-op.
	MarkSynced(ctx context.Context, id string, updatedAt int64) error
	// MarkDeleted turns the entry into an unsynced tombstone. An unknown id
	// produces a bare tombstone.
	MarkDeleted(ctx context.Context, id string, updatedAt int64) (models.Entry, error)
	// Get returns [ErrEntryNotFound] when id is absent.
	Get(ctx context.Context, id string) (models.Entry, error)
	GetAll(ctx context.Context) ([]models.Entry, error)
	GetUnsynced(ctx context.Context) ([]models.Entry, error)
	// Delete removes the row. Sync logic never calls it.
	Delete(ctx context.Context, id string) error
	// BulkUpsert writes the batch in one transaction and returns the entries
	// actually written. A change is skipped when its row exists and is not
	// the synced revision named by Base. An absent row is always written.
	BulkUpsert(ctx context.Context, changes []models.EntryChange) ([]models.Entry, error)
}

// SettingsRepository keeps device-local settings that are never synced.
type SettingsRepository interface {
	GetSalt(ctx context.Context) ([]byte, bool, error)
	SaveSalt(ctx context.Context, salt []byte) error
	// GetSession returns [ErrLocalSessionNotFound] when nobody is signed in.
	GetSession(ctx context.Context) (models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error
}

// LocalStorage is a store implementing both repositories at once.
type LocalStorage interface {
	LocalEntryRepository
	SettingsRepository
}
