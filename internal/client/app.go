package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/service"
	"github.com/MKhiriev/go-merchant-verify/internal/vault"
	"github.com/MKhiriev/go-merchant-verify/internal/workers"
	"github.com/MKhiriev/go-merchant-verify/models"
)

// App is the headless client runtime. It owns the process lifecycle: session
// restore on startup, background workers, the verification event pump, and
// graceful shutdown on stop signals.
type App struct {
	services *service.Services
	vault    *vault.Session
	workers  config.Workers
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(services *service.Services, vaultSession *vault.Session, cfg config.Workers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client app requires initialized services")
	}
	if vaultSession == nil {
		return nil, errors.New("client app requires an open vault session")
	}

	return &App{
		services: services,
		vault:    vaultSession,
		workers:  cfg,
		logger:   logger,
	}, nil
}

// Run starts the client and blocks until a stop signal arrives, then shuts
// everything down in dependency order.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// Поднимаем сессию из vault; её отсутствие не ошибка, просто нужен
	// повторный вход.
	if err := a.services.AuthService.Restore(ctx); err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			a.logger.Info().Msg("no stored session, login required")
		} else {
			a.logger.Warn().Err(err).Msg("session restore failed, login required")
		}
	}

	events, unsubscribe := a.services.Engine.Subscribe()
	defer unsubscribe()

	jobs := workers.NewWorkers(
		workers.NewTokenRefreshWorker(ctx, a.services.TokenRefreshJob, a.workers.RefreshCheckInterval),
		workers.NewHistoryPruneWorker(ctx, a.services.HistoryPruneJob, a.workers.PruneInterval, a.workers.HistoryKeep),
	)
	jobs.Run()

	go a.pumpEvents(events)

	// listen for stop signals
	<-ctx.Done()
	a.logger.Info().Msg("stop signal received")

	jobs.Stop()
	a.services.Engine.Close()
	a.vault.Close()

	a.logger.Info().Msg("client shut down gracefully")
	return nil
}

// pumpEvents logs the engine's event stream. It exits when the engine closes
// the subscriber channel.
func (a *App) pumpEvents(events <-chan models.VerificationEvent) {
	for ev := range events {
		if ev.Kind == models.EventTransportError {
			a.logger.Warn().Err(ev.Err).
				Str("request_id", ev.RequestID).
				Msg("verification transport degraded")
			continue
		}

		a.logger.Info().
			Str("request_id", ev.RequestID).
			Str("event", string(ev.Kind)).
			Uint64("sequence", ev.Sequence).
			Msg("verification event")
	}
}
