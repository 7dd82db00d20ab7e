package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Version is shown in the dashboard header.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base address of the remote store.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background job and scheduler settings.
type ClientWorkers struct {
	SyncInterval         time.Duration
	SyncDebounce         time.Duration
	MaxBackoff           time.Duration
	ConnectivityInterval time.Duration
}

// ClientLog contains client log settings.
type ClientLog struct {
	File string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Log     ClientLog
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration, filling gaps with client defaults.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := loadConfig(processArgs(), nil, clientDefaults())
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: cfg.Storage.ClientDB,
		},
		Workers: ClientWorkers{
			SyncInterval:         cfg.Workers.SyncInterval,
			SyncDebounce:         cfg.Workers.SyncDebounce,
			MaxBackoff:           cfg.Workers.MaxBackoff,
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
		},
		Log: ClientLog{File: cfg.Log.File},
	}
}
