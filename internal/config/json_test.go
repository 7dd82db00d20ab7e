package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want StructuredConfig
	}{
		{
			name: "server file",
			body: `{
				"app": {
					"password_hash_key": "hash_secret",
					"token_sign_key": "jwt_secret",
					"token_issuer": "go-finance-keeper",
					"token_duration": "1h",
					"version": "1.0.0"
				},
				"server": {"http_address": "0.0.0.0:8080", "request_timeout": "30s"},
				"storage": {"db": {"dsn": "postgres://ledger@localhost/ledger"}}
			}`,
			want: StructuredConfig{
				App: App{
					PasswordHashKey: "hash_secret",
					TokenSignKey:    "jwt_secret",
					TokenIssuer:     "go-finance-keeper",
					TokenDuration:   time.Hour,
					Version:         "1.0.0",
				},
				Server:  Server{HTTPAddress: "0.0.0.0:8080", RequestTimeout: 30 * time.Second},
				Storage: Storage{DB: DB{DSN: "postgres://ledger@localhost/ledger"}},
			},
		},
		{
			name: "client file",
			body: `{
				"adapter": {"http_address": "http://localhost:8080", "request_timeout": "10s"},
				"storage": {"client_db": {"dsn": "finance.db"}},
				"workers": {
					"sync_interval": "2m",
					"sync_debounce": "3s",
					"max_backoff": "5m",
					"connectivity_interval": "20s"
				},
				"log": {"file": "client.log"}
			}`,
			want: StructuredConfig{
				Adapter: Adapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 10 * time.Second},
				Storage: Storage{ClientDB: ClientDB{DSN: "finance.db"}},
				Workers: Workers{
					SyncInterval:         2 * time.Minute,
					SyncDebounce:         3 * time.Second,
					MaxBackoff:           5 * time.Minute,
					ConnectivityInterval: 20 * time.Second,
				},
				Log: Log{File: "client.log"},
			},
		},
		{
			name: "numeric durations are nanoseconds",
			body: `{"workers": {"sync_debounce": 1000000000}}`,
			want: StructuredConfig{Workers: Workers{SyncDebounce: time.Second}},
		},
		{
			name: "empty object",
			body: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseJSON(writeConfigFile(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    func(*testing.T) string { return "definitely-does-not-exist.json" },
			wantMsg: "error reading a json file",
		},
		{
			name:    "not json",
			path:    func(t *testing.T) string { return writeConfigFile(t, `{ this is not json }`) },
			wantMsg: "error decoding json configs",
		},
		{
			name:    "bad duration",
			path:    func(t *testing.T) string { return writeConfigFile(t, `{"workers": {"max_backoff": "eventually"}}`) },
			wantMsg: "error decoding json configs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseJSON(tt.path(t))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	raw, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(raw))
}
