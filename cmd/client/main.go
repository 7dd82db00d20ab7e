package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-finance-keeper/internal/adapter"
	"github.com/MKhiriev/go-finance-keeper/internal/client"
	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
	"github.com/MKhiriev/go-finance-keeper/internal/tui"
	"github.com/MKhiriev/go-finance-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("finance-client").Fatal().Err(err).Msg("error getting configs")
	}

	// the terminal belongs to the UI, so logs go to a file
	log := logger.NewClientLogger("finance-client", cfg.Log.File)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	services := service.NewClientServices(storages, serverAdapter, cfg.Workers, log)
	ui := tui.New(services, buildInfo, log)

	app, err := client.NewApp(services, ui, serverAdapter, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}
