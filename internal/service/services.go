package service

import (
	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

type Services struct {
	AuthService        AuthService
	RemoteEntryService RemoteEntryService
	AppInfoService     AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, cfg.App, logger),
		RemoteEntryService: NewRemoteEntryValidationService().Wrap(NewRemoteEntryService(storages.RemoteEntryRepository, logger)),
		AppInfoService:     appInfoService,
	}, nil
}
