package service

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/internal/utils"
	"github.com/MKhiriev/go-finance-keeper/internal/validators"
	"github.com/MKhiriev/go-finance-keeper/models"
	"github.com/shopspring/decimal"
)

// DefaultBackupFileName is the file name suggested for plaintext exports.
const DefaultBackupFileName = "finance-backup.json"

type entryService struct {
	entries   store.LocalEntryRepository
	notifier  SyncNotifier
	ids       *utils.UUIDGenerator
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

// NewEntryService returns an [EntryService] writing to entries and
// notifying notifier after every successful write.
func NewEntryService(entries store.LocalEntryRepository, notifier SyncNotifier, logger *logger.Logger) EntryService {
	return &entryService{
		entries:   entries,
		notifier:  notifier,
		ids:       utils.NewUUIDGenerator(),
		validator: validators.NewEntryValidator(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *entryService) SaveEntry(ctx context.Context, draft models.EntryDraft) (models.Entry, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	now := s.now().UnixMilli()
	entry := models.Entry{
		ID:        draft.ID,
		Type:      strings.TrimSpace(draft.Type),
		Amount:    draft.Amount,
		CreatedAt: draft.CreatedAt,
		UpdatedAt: now,
	}

	if entry.ID == "" {
		entry.ID = s.ids.Generate()
	} else {
		previous, err := s.entries.Get(ctx, entry.ID)
		switch {
		case err == nil:
			entry.CreatedAt = previous.CreatedAt
			entry.UpdatedAt = nextUpdatedAt(now, previous.UpdatedAt)
		case !errors.Is(err, store.ErrEntryNotFound):
			log.Err(err).Str("func", "*entryService.SaveEntry").Str("id", entry.ID).Msg("error reading entry")
			return models.Entry{}, err
		}
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = now
	}

	saved, err := s.entries.Upsert(ctx, entry)
	if err != nil {
		log.Err(err).Str("func", "*entryService.SaveEntry").Str("id", entry.ID).Msg("error saving entry")
		return models.Entry{}, err
	}

	s.notifier.ScheduleSync()
	return saved, nil
}

func (s *entryService) SoftDeleteEntry(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	}

	previous, err := s.entries.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrEntryNotFound) {
			log.Err(err).Str("func", "*entryService.SoftDeleteEntry").Str("id", id).Msg("error reading entry")
		}
		return err
	}

	updatedAt := nextUpdatedAt(s.now().UnixMilli(), previous.UpdatedAt)
	if _, err = s.entries.MarkDeleted(ctx, id, updatedAt); err != nil {
		log.Err(err).Str("func", "*entryService.SoftDeleteEntry").Str("id", id).Msg("error deleting entry")
		return err
	}

	s.notifier.ScheduleSync()
	return nil
}

func (s *entryService) ListEntries(ctx context.Context) ([]models.Entry, error) {
	all, err := s.entries.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	live := make([]models.Entry, 0, len(all))
	for _, entry := range all {
		if !entry.Deleted {
			live = append(live, entry)
		}
	}

	slices.SortStableFunc(live, func(a, b models.Entry) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	return live, nil
}

func (s *entryService) Totals(ctx context.Context) ([]models.TypeTotal, error) {
	live, err := s.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	return SumByType(live), nil
}

// SumByType totals the amounts of entries per type, ordered by type.
func SumByType(entries []models.Entry) []models.TypeTotal {
	byType := make(map[string]*models.TypeTotal)
	for _, entry := range entries {
		total, ok := byType[entry.Type]
		if !ok {
			total = &models.TypeTotal{Type: entry.Type, Total: decimal.Zero}
			byType[entry.Type] = total
		}
		total.Total = total.Total.Add(entry.Amount)
		total.Count++
	}

	totals := make([]models.TypeTotal, 0, len(byType))
	for _, total := range byType {
		totals = append(totals, *total)
	}
	slices.SortFunc(totals, func(a, b models.TypeTotal) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return totals
}

func (s *entryService) ExportLocalBackup(ctx context.Context, w io.Writer) error {
	all, err := s.entries.GetAll(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(all); err != nil {
		return fmt.Errorf("error writing backup: %w", err)
	}

	return nil
}

func (s *entryService) ExportLocalBackupToFile(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	if path == "" {
		path = DefaultBackupFileName
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err = s.ExportLocalBackup(ctx, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing backup file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		log.Err(err).Str("func", "*entryService.ExportLocalBackupToFile").Str("path", path).Msg("error moving backup file")
		return fmt.Errorf("error moving backup file: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("local backup exported")
	return nil
}

// nextUpdatedAt keeps the modification clock strictly increasing per entry
// even when the wall clock stalls or goes backwards.
func nextUpdatedAt(now, previous int64) int64 {
	return max(now, previous+1)
}
