package service

import (
	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/crypto"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

type ClientServices struct {
	KeyManager    crypto.KeyManager
	AuthService   ClientAuthService
	EntryService  EntryService
	SyncEngine    SyncEngine
	SyncScheduler SyncScheduler
	Lifecycle     Lifecycle
	SyncJob       ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	keyChain := crypto.NewKeyChainService()
	keyManager := crypto.NewKeyManager(keyChain, storages.SettingsRepository, logger)

	authSvc := NewClientAuthService(storages.SettingsRepository, serverAdapter, logger)
	engine := NewSyncEngine(storages.EntryRepository, serverAdapter, keyManager, keyChain, authSvc, logger)
	scheduler := NewSyncScheduler(engine, cfg, logger)

	return &ClientServices{
		KeyManager:    keyManager,
		AuthService:   authSvc,
		EntryService:  NewEntryService(storages.EntryRepository, scheduler, logger),
		SyncEngine:    engine,
		SyncScheduler: scheduler,
		Lifecycle:     NewLifecycle(authSvc, engine, scheduler, logger),
		SyncJob:       NewClientSyncJob(scheduler),
	}
}
