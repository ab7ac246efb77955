package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/adapter"
	"github.com/MKhiriev/go-merchant-verify/internal/config"
	"github.com/MKhiriev/go-merchant-verify/internal/crypto"
	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/utils"
	"github.com/MKhiriev/go-merchant-verify/internal/vault"
	"github.com/MKhiriev/go-merchant-verify/models"
)

// DefaultRefreshThreshold is how close to expiry the access token may get
// before it is proactively exchanged.
const DefaultRefreshThreshold = 5 * time.Minute

type authService struct {
	adapter adapter.ApiClient
	vault   CredentialVault
	cipher  crypto.CipherService
	clock   Clock
	logger  *logger.Logger

	refreshThreshold time.Duration

	// mu serializes token pair exchanges so concurrent refreshes cannot
	// race each other into a revoked refresh token.
	mu sync.Mutex
}

// NewAuthService creates the auth service. A zero cfg.RefreshThreshold
// selects [DefaultRefreshThreshold].
func NewAuthService(api adapter.ApiClient, credentialVault CredentialVault, cipher crypto.CipherService, clock Clock, cfg config.Auth, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")

	if cfg.RefreshThreshold <= 0 {
		cfg.RefreshThreshold = DefaultRefreshThreshold
	}

	return &authService{
		adapter:          api,
		vault:            credentialVault,
		cipher:           cipher,
		clock:            clock,
		logger:           logger,
		refreshThreshold: cfg.RefreshThreshold,
	}
}

// Login implements AuthService.
func (a *authService) Login(ctx context.Context, login, password string) (models.TokenPair, error) {
	pair, err := a.adapter.Login(ctx, models.LoginRequest{Login: login, Password: password})
	if err != nil {
		return models.TokenPair{}, mapAdapterError(err)
	}

	if err := a.sealTokenPair(pair); err != nil {
		return models.TokenPair{}, err
	}

	a.logger.Info().Str("login", login).Msg("logged in")
	return pair, nil
}

// Restore implements AuthService.
func (a *authService) Restore(ctx context.Context) error {
	pair, err := a.openTokenPair()
	if err != nil {
		return err
	}

	a.adapter.SetToken(pair.AccessToken)

	if pair.ShouldRefresh(a.clock.Now(), a.refreshThreshold) {
		if _, err := a.Refresh(ctx); err != nil {
			return err
		}
	}

	a.logger.Info().Msg("session restored from vault")
	return nil
}

// Refresh implements AuthService.
func (a *authService) Refresh(ctx context.Context) (models.TokenPair, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.refreshLocked(ctx)
}

// RefreshIfNeeded implements AuthService.
func (a *authService) RefreshIfNeeded(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	pair, err := a.openTokenPair()
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil
		}
		return err
	}

	if !pair.ShouldRefresh(a.clock.Now(), a.refreshThreshold) {
		return nil
	}

	_, err = a.refreshLocked(ctx)
	return err
}

// refreshLocked exchanges the stored refresh token. Caller holds a.mu.
func (a *authService) refreshLocked(ctx context.Context) (models.TokenPair, error) {
	pair, err := a.openTokenPair()
	if err != nil {
		return models.TokenPair{}, err
	}

	fresh, err := a.adapter.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		return models.TokenPair{}, mapAdapterError(err)
	}

	if err := a.sealTokenPair(fresh); err != nil {
		return models.TokenPair{}, err
	}

	a.logger.Debug().Msg("token pair refreshed")
	return fresh, nil
}

// Logout implements AuthService.
func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if pair, err := a.openTokenPair(); err == nil && pair.RefreshToken != "" {
		if err := a.adapter.Logout(ctx, pair.RefreshToken); err != nil {
			a.logger.Warn().Err(err).Msg("server-side logout failed, clearing local material anyway")
		}
	}

	a.adapter.SetToken("")
	if err := a.vault.DeleteTokenPair(); err != nil {
		return fmt.Errorf("delete stored token pair: %w", err)
	}

	a.logger.Info().Msg("logged out")
	return nil
}

// sealTokenPair seals the pair under the session key and stores it in the
// vault.
func (a *authService) sealTokenPair(pair models.TokenPair) error {
	ciphertext, nonce, err := a.cipher.SealJSON(pair, a.vault.Key())
	if err != nil {
		return fmt.Errorf("seal token pair: %w", err)
	}

	if err := a.vault.PutTokenPair(ciphertext, nonce); err != nil {
		return fmt.Errorf("store token pair: %w", err)
	}
	return nil
}

// openTokenPair loads and opens the sealed pair. The access token expiry is
// re-derived from the token because it does not survive serialization. A
// record that fails authentication is deleted and the caller must log in
// again.
func (a *authService) openTokenPair() (models.TokenPair, error) {
	payload, nonce, err := a.vault.GetTokenPair()
	if err != nil {
		if errors.Is(err, vault.ErrSecretNotFound) {
			return models.TokenPair{}, fmt.Errorf("%w: no stored token pair", ErrNotAuthenticated)
		}
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := a.cipher.OpenJSON(payload, nonce, a.vault.Key(), &pair); err != nil {
		if errors.Is(err, crypto.ErrAuthFailure) {
			_ = a.vault.DeleteTokenPair()
			a.logger.Warn().Msg("stored token pair failed authentication, discarded")
		}
		return models.TokenPair{}, fmt.Errorf("open stored token pair: %w", err)
	}

	if exp, err := utils.TokenExpiry(pair.AccessToken); err == nil {
		pair.AccessExpiresAt = exp
	}

	return pair, nil
}
