package service

import (
	"context"

	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type remoteEntryService struct {
	entryRepository store.RemoteEntryRepository

	logger *logger.Logger
}

func NewRemoteEntryService(entryRepository store.RemoteEntryRepository, logger *logger.Logger) RemoteEntryService {
	return &remoteEntryService{
		entryRepository: entryRepository,
		logger:          logger,
	}
}

func (s *remoteEntryService) PutEntry(ctx context.Context, userID string, record models.RemoteRecord) (models.RemoteRecord, error) {
	return s.entryRepository.Put(ctx, userID, record)
}

func (s *remoteEntryService) DeleteEntry(ctx context.Context, userID, id string) error {
	return s.entryRepository.Delete(ctx, userID, id)
}

func (s *remoteEntryService) ListEntries(ctx context.Context, userID string) ([]models.RemoteRecord, error) {
	return s.entryRepository.GetAll(ctx, userID)
}
