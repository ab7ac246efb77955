package main

import (
	"fmt"

	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/client"
	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/service"
	"github.com/MKhiriev/go-merchant-verify/internal/store"
	"github.com/MKhiriev/go-merchant-verify/internal/utils"
	"github.com/MKhiriev/go-merchant-verify/internal/vault"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("merchant-verify-client")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	cipher := crypto.NewCipherService()
	vaultSession, err := vault.Open(vault.NewKeyringStore(), cipher, cfg.Crypto.KDFIterations)
	if err != nil {
		log.Fatal().Err(err).Msg("open credential vault")
	}

	correlationID := utils.NewUUIDGenerator().Generate()
	api, err := adapter.NewApiClient(cfg.Adapter, correlationID, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create api client")
	}

	dialer, err := adapter.NewSessionDialer(cfg.Session, cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session dialer")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewServices(api, dialer, vaultSession, cipher, storages, cfg, log)

	app, err := client.NewApp(services, vaultSession, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
