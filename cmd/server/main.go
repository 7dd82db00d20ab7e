package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-keeper/internal/config"
	"github.com/MKhiriev/go-finance-keeper/internal/handler"
	"github.com/MKhiriev/go-finance-keeper/internal/logger"
	"github.com/MKhiriev/go-finance-keeper/internal/server"
	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
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

	log := logger.NewLogger("finance-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("server", cfg.Server).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
