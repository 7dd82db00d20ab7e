package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-finance-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock -exclude_interfaces=SyncNotifier,SessionProvider,ClientAuthService,EntryService,SyncEngine,Lifecycle,ClientSyncJob

// RemoteRepository is the per-user remote document collection the sync
// engine reconciles against. It holds only encrypted payloads and the clear
// updatedAt of each entry. [adapter.ServerAdapter] implements it.
type RemoteRepository interface {
	// Put creates or replaces the document record.ID of userID.
	Put(ctx context.Context, userID string, record models.RemoteRecord) error
	// Delete removes the document id of userID; a missing id is not an error.
	Delete(ctx context.Context, userID, id string) error
	// GetAll returns the full collection of userID.
	GetAll(ctx context.Context, userID string) ([]models.RemoteRecord, error)
}

// SyncNotifier is handed to everything that mutates local entries so it can
// request a sync cycle after a successful write.
type SyncNotifier interface {
	ScheduleSync()
}

// SessionProvider exposes the signed-in user to the sync engine.
type SessionProvider interface {
	// CurrentUser returns the active session and whether one exists.
	CurrentUser() (models.Session, bool)
}

// ClientAuthService defines the client-side contract for registration,
// authentication and the persisted session.
type ClientAuthService interface {
	SessionProvider

	// Register creates an account on the remote store and signs in.
	Register(ctx context.Context, login, password string) (models.Session, error)

	// Login authenticates against the remote store and signs in.
	Login(ctx context.Context, login, password string) (models.Session, error)

	// Logout clears the persisted session and signs out. Local entries are
	// kept.
	Logout(ctx context.Context) error

	// RestoreSession signs in with the session persisted by a previous run,
	// if any. It reports whether a session was restored.
	RestoreSession(ctx context.Context) (bool, error)

	// OnAuthStateChange registers fn to be called with the user id on
	// sign-in and with nil on sign-out. The returned func unsubscribes.
	OnAuthStateChange(fn func(userID *string)) (unsubscribe func())
}

// EntryService is the mutating surface used by the dashboard. Every
// successful write is followed by a [SyncNotifier.ScheduleSync].
type EntryService interface {
	// SaveEntry creates or updates an entry from draft.
	SaveEntry(ctx context.Context, draft models.EntryDraft) (models.Entry, error)

	// SoftDeleteEntry turns the entry id into a tombstone.
	SoftDeleteEntry(ctx context.Context, id string) error

	// ListEntries returns live entries, newest first.
	ListEntries(ctx context.Context) ([]models.Entry, error)

	// Totals sums the amounts of live entries per type.
	Totals(ctx context.Context) ([]models.TypeTotal, error)

	// ExportLocalBackup writes every stored entry, tombstones included, as
	// plaintext JSON to w. It never modifies the store.
	ExportLocalBackup(ctx context.Context, w io.Writer) error

	// ExportLocalBackupToFile is ExportLocalBackup into the file at path.
	ExportLocalBackupToFile(ctx context.Context, path string) error
}

// SyncState is the phase of the sync engine.
type SyncState string

const (
	SyncStateIdle        SyncState = "idle"
	SyncStateUploading   SyncState = "uploading"
	SyncStateDownloading SyncState = "downloading"
	SyncStateMerging     SyncState = "merging"
	SyncStateFailed      SyncState = "failed"
)

// SyncEngine runs sync cycles between the local store and the remote
// repository. Cycles never overlap.
type SyncEngine interface {
	// SyncAll runs one upload, download and merge cycle.
	SyncAll(ctx context.Context) (models.SyncReport, error)

	// State returns the current phase.
	State() SyncState

	// RotateKey replaces the device salt and re-derives the key of the
	// signed-in user. It waits for a running cycle to finish.
	RotateKey(ctx context.Context) error

	// ResetKey forgets the derived key.
	ResetKey()
}

// SyncScheduler decides when the engine runs: it debounces bursts of
// triggers, keeps at most one cycle running plus one queued, and backs off
// after failed cycles.
type SyncScheduler interface {
	SyncNotifier

	// SyncNow starts a cycle without waiting for the debounce window.
	SyncNow()

	// SetOnline records connectivity. Going online schedules a sync; going
	// offline stops pending timers.
	SetOnline(online bool)

	// Status returns the indicator shown to the user.
	Status() models.SyncStatus

	// LastResult returns the report and error of the last finished cycle.
	LastResult() (models.SyncReport, error)

	// OnStatusChange registers fn to be called on every status change.
	OnStatusChange(fn func(models.SyncStatus))

	// Start enables the scheduler. Cycles run with a context derived from ctx.
	Start(ctx context.Context)

	// Stop cancels pending timers and waits for a running cycle to finish.
	Stop()
}

// Lifecycle connects authentication and connectivity events to the
// scheduler and the engine.
type Lifecycle interface {
	// Start subscribes to auth state changes.
	Start()

	// Stop unsubscribes.
	Stop()

	// OnConnectivityChange is called on every online/offline transition.
	OnConnectivityChange(online bool)

	// RequestBackgroundSync is a best-effort wake-up feeding ScheduleSync.
	RequestBackgroundSync()
}

// ClientSyncJob defines the contract for a background worker that
// periodically requests a sync.
type ClientSyncJob interface {
	// Start launches the background goroutine. It requests a sync every
	// interval, defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
