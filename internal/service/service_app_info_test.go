package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, nil, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, svc)

	svc, err = NewAppInfoService(config.App{}, nil, logger.Nop())
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion(t *testing.T) {
	for _, version := range []string{"3.1.4", "v1.2.3-beta+build.42"} {
		svc, err := NewAppInfoService(config.App{Version: version}, nil, logger.Nop())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// версия не зависит от контекста
		assert.Equal(t, version, svc.GetAppVersion(ctx))
	}
}

// ─────────────────────────────────────────────
// CheckHealth
// ─────────────────────────────────────────────

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		wantErr bool
	}{
		{name: "storage answers"},
		{name: "storage down", pingErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			pinger := mock.NewMockPinger(ctrl)
			pinger.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.pingErr
			})

			svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, pinger, logger.Nop())
			require.NoError(t, err)

			err = svc.CheckHealth(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrServiceUnavailable)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckHealth_NoStorage(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, nil, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, svc.CheckHealth(context.Background()))
}
