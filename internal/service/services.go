package service

import (
	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/store"
	"github.com/MKhiriev/go-merchant-verify/internal/validators"
)

type Services struct {
	Engine          VerificationEngine
	AuthService     AuthService
	TokenRefreshJob TokenRefreshJob
	HistoryPruneJob HistoryPruneJob
}

func NewServices(
	api adapter.ApiClient,
	dialer adapter.SessionDialer,
	credentialVault CredentialVault,
	cipher crypto.CipherService,
	storages *store.Storages,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	clock := NewClock()
	auth := NewAuthService(api, credentialVault, cipher, clock, cfg.Auth, logger)

	return &Services{
		Engine: NewVerificationEngine(
			api,
			dialer,
			credentialVault,
			cipher,
			storages.HistoryRepository,
			validators.NewChallengeValidator(),
			clock,
			cfg.Engine,
			logger,
		),
		AuthService:     auth,
		TokenRefreshJob: NewTokenRefreshJob(auth, logger),
		HistoryPruneJob: NewHistoryPruneJob(storages.HistoryRepository, logger),
	}
}
