package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
)

// healthCheckTimeout bounds a single storage probe.
const healthCheckTimeout = 2 * time.Second

type appInfoService struct {
	appVersion string
	storage    Pinger

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, storage Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		storage:    storage,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) CheckHealth(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.storage.Ping(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.CheckHealth").Msg("storage ping failed")
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return nil
}
