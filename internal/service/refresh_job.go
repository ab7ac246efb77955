package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/logger"
)

type tokenRefreshJob struct {
	auth   AuthService
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTokenRefreshJob creates a tokenRefreshJob that calls
// auth.RefreshIfNeeded on a ticker. The job is idle until Start is called.
func NewTokenRefreshJob(auth AuthService, logger *logger.Logger) TokenRefreshJob {
	return &tokenRefreshJob{auth: auth, logger: logger}
}

// Start implements TokenRefreshJob. It stops any previously running job, then
// launches a background goroutine that checks the token every interval. If
// interval is zero or negative it defaults to 1 minute. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *tokenRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.auth.RefreshIfNeeded(jobCtx); err != nil {
					j.logger.Warn().Err(err).Msg("background token refresh failed")
				}
			}
		}
	}()
}

// Stop implements TokenRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *tokenRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
