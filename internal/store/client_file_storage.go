package store

import (
	"cmp"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/MKhiriev/go-finance-keeper/models"
)

type localFileStorage struct {
	path     string
	inMemory bool

	mu       sync.RWMutex
	entries  map[string]models.Entry
	settings map[string]string
}

type localPersistedState struct {
	Entries  map[string]models.Entry `json:"entries"`
	Settings map[string]string       `json:"settings,omitempty"`
}

// NewLocalFileStorage returns a [LocalStorage] keeping its state in a JSON
// file. The paths "", ":memory:" and "memory" keep everything in memory.
//
// Every mutation rewrites the snapshot through a temporary file and a
// rename, so a failed write leaves both the file and the in-memory state
// untouched.
func NewLocalFileStorage(path string) (LocalStorage, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &localFileStorage{
		path:     path,
		inMemory: IsMemoryDSN(path),
		entries:  make(map[string]models.Entry),
		settings: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// IsMemoryDSN reports whether dsn selects the in-memory store.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || dsn == "memory"
}

func (s *localFileStorage) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read local storage file: %w", ErrStorage, err)
	}

	var st localPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode local storage file: %w", ErrStorage, err)
	}

	if st.Entries != nil {
		s.entries = st.Entries
	}
	if st.Settings != nil {
		s.settings = st.Settings
	}

	return nil
}

func (s *localFileStorage) persist(entries map[string]models.Entry, settings map[string]string) error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create local storage dir: %w", ErrStorage, err)
		}
	}

	payload, err := json.MarshalIndent(localPersistedState{Entries: entries, Settings: settings}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode local storage: %w", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write local storage file: %w", ErrStorage, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close local storage file: %w", ErrStorage, err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace local storage file: %w", ErrStorage, err)
	}

	return nil
}

// mutateEntries applies fn to a copy of the entries and swaps it in only
// after the snapshot was persisted.
func (s *localFileStorage) mutateEntries(fn func(entries map[string]models.Entry)) error {
	next := maps.Clone(s.entries)
	fn(next)

	if err := s.persist(next, s.settings); err != nil {
		return err
	}

	s.entries = next
	return nil
}

func (s *localFileStorage) mutateSettings(fn func(settings map[string]string)) error {
	next := maps.Clone(s.settings)
	fn(next)

	if err := s.persist(s.entries, next); err != nil {
		return err
	}

	s.settings = next
	return nil
}

func (s *localFileStorage) Upsert(_ context.Context, entry models.Entry) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutateEntries(func(entries map[string]models.Entry) {
		entries[entry.ID] = entry
	})
	if err != nil {
		return models.Entry{}, err
	}

	return entry, nil
}

func (s *localFileStorage) MarkSynced(_ context.Context, id string, updatedAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil
	}
	if updatedAt != 0 && entry.UpdatedAt > updatedAt {
		return nil
	}

	return s.mutateEntries(func(entries map[string]models.Entry) {
		entry.Synced = true
		if updatedAt != 0 {
			entry.UpdatedAt = updatedAt
		}
		entries[id] = entry
	})
}

func (s *localFileStorage) MarkDeleted(_ context.Context, id string, updatedAt int64) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = models.Entry{ID: id, CreatedAt: updatedAt}
	}
	entry.Deleted = true
	entry.Synced = false
	entry.UpdatedAt = updatedAt

	err := s.mutateEntries(func(entries map[string]models.Entry) {
		entries[id] = entry
	})
	if err != nil {
		return models.Entry{}, err
	}

	return entry, nil
}

func (s *localFileStorage) Get(_ context.Context, id string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok {
		return models.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *localFileStorage) GetAll(_ context.Context) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := slices.Collect(maps.Values(s.entries))
	slices.SortFunc(entries, func(a, b models.Entry) int {
		return cmp.Or(cmp.Compare(b.UpdatedAt, a.UpdatedAt), cmp.Compare(a.ID, b.ID))
	})
	return entries, nil
}

func (s *localFileStorage) GetUnsynced(_ context.Context) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]models.Entry, 0)
	for _, entry := range s.entries {
		if !entry.Synced {
			entries = append(entries, entry)
		}
	}
	slices.SortFunc(entries, func(a, b models.Entry) int {
		return cmp.Or(cmp.Compare(a.UpdatedAt, b.UpdatedAt), cmp.Compare(a.ID, b.ID))
	})
	return entries, nil
}

func (s *localFileStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return nil
	}

	return s.mutateEntries(func(entries map[string]models.Entry) {
		delete(entries, id)
	})
}

func (s *localFileStorage) BulkUpsert(_ context.Context, changes []models.EntryChange) ([]models.Entry, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var written []models.Entry
	err := s.mutateEntries(func(entries map[string]models.Entry) {
		for _, change := range changes {
			if cur, ok := entries[change.Entry.ID]; ok && (!cur.Synced || cur.UpdatedAt != change.Base) {
				continue
			}
			entries[change.Entry.ID] = change.Entry
			written = append(written, change.Entry)
		}
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func (s *localFileStorage) GetSalt(_ context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.settings[settingSalt]
	if !ok {
		return nil, false, nil
	}
	return decodeSalt(value)
}

func (s *localFileStorage) SaveSalt(_ context.Context, salt []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateSettings(func(settings map[string]string) {
		settings[settingSalt] = base64.StdEncoding.EncodeToString(salt)
	})
}

func (s *localFileStorage) GetSession(_ context.Context) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.settings[settingSession]
	if !ok {
		return models.Session{}, ErrLocalSessionNotFound
	}
	return decodeSession(value)
}

func (s *localFileStorage) SaveSession(_ context.Context, session models.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: encode session: %w", ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutateSettings(func(settings map[string]string) {
		settings[settingSession] = string(value)
	})
}

func (s *localFileStorage) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[settingSession]; !ok {
		return nil
	}

	return s.mutateSettings(func(settings map[string]string) {
		delete(settings, settingSession)
	})
}
