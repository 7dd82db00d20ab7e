package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/tui"
	"github.com/MKhiriev/go-finance-keeper/internal/workers"
	"github.com/MKhiriev/go-finance-keeper/models"
)

type App struct {
	services *service.ClientServices
	ui       UI
	prober   workers.Prober
	cfg      config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, prober workers.Prober, cfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and ui")
	}

	return &App{
		services: services,
		ui:       ui,
		prober:   prober,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run starts the background machinery and alternates between the sign-in
// flow and the dashboard until the user quits.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.services.SyncScheduler.Start(ctx)
	defer a.services.SyncScheduler.Stop()

	a.services.Lifecycle.Start()
	defer a.services.Lifecycle.Stop()

	var wg sync.WaitGroup
	if a.prober != nil {
		monitor := workers.NewConnectivityMonitor(a.prober, a.cfg.ConnectivityInterval, a.services.Lifecycle.OnConnectivityChange, a.logger)
		wg.Go(func() {
			workers.NewWorkers(monitor).Run(ctx)
		})
	}
	defer wg.Wait()
	// cancel before waiting for the workers
	defer cancel()

	a.services.SyncJob.Start(ctx, a.cfg.SyncInterval)
	defer a.services.SyncJob.Stop()

	err := a.loop(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("user quit")
		return nil
	}
	return err
}

func (a *App) loop(ctx context.Context) error {
	for {
		session, err := a.signIn(ctx)
		if err != nil {
			return err
		}

		a.logger.Info().Str("user_id", session.UserID).Msg("signed in")

		logout, err := a.ui.MainLoop(ctx, session)
		if err != nil {
			return fmt.Errorf("main loop: %w", err)
		}
		if !logout {
			return nil
		}

		if err = a.services.AuthService.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		a.logger.Info().Str("user_id", session.UserID).Msg("signed out")
	}
}

// signIn restores the persisted session or falls back to the interactive flow.
func (a *App) signIn(ctx context.Context) (models.Session, error) {
	restored, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "*App.signIn").Msg("session was not restored")
	}
	if restored {
		if session, ok := a.services.AuthService.CurrentUser(); ok {
			return session, nil
		}
	}

	return a.ui.AuthFlow(ctx)
}
