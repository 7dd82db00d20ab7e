package config

import "time"

// Default values applied after all explicit sources have been merged.
const (
	DefaultServerAddress        = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultTokenIssuer          = "go-finance-keeper"
	DefaultTokenDuration        = 24 * time.Hour
	DefaultClientDSN            = "finance.db"
	DefaultAdapterTimeout       = 15 * time.Second
	DefaultSyncInterval         = time.Minute
	DefaultSyncDebounce         = 3 * time.Second
	DefaultMaxBackoff           = 5 * time.Minute
	DefaultConnectivityInterval = 10 * time.Second
)

func serverDefaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

func clientDefaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			ClientDB: ClientDB{DSN: DefaultClientDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			SyncInterval:         DefaultSyncInterval,
			SyncDebounce:         DefaultSyncDebounce,
			MaxBackoff:           DefaultMaxBackoff,
			ConnectivityInterval: DefaultConnectivityInterval,
		},
	}
}
