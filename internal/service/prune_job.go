package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/internal/store"
)

// DefaultHistoryKeep is how many newest history rows the pruner retains when
// no retention is configured.
const DefaultHistoryKeep = 500

type historyPruneJob struct {
	history store.HistoryRepository
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHistoryPruneJob creates a historyPruneJob that trims the history store
// on a ticker. The job is idle until Start is called.
func NewHistoryPruneJob(history store.HistoryRepository, logger *logger.Logger) HistoryPruneJob {
	return &historyPruneJob{history: history, logger: logger}
}

// Start implements HistoryPruneJob. It stops any previously running job, then
// launches a background goroutine that prunes every interval, keeping the
// newest keep rows. If interval is zero or negative it defaults to 1 hour; if
// keep is zero or negative it defaults to [DefaultHistoryKeep]. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *historyPruneJob) Start(ctx context.Context, interval time.Duration, keep int) {
	if interval <= 0 {
		interval = time.Hour
	}
	if keep <= 0 {
		keep = DefaultHistoryKeep
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
				pruned, err := j.history.Prune(jobCtx, keep)
				if err != nil {
					j.logger.Warn().Err(err).Msg("history prune failed")
					continue
				}
				if pruned > 0 {
					j.logger.Debug().Int64("pruned", pruned).Int("keep", keep).Msg("history pruned")
				}
			}
		}
	}()
}

// Stop implements HistoryPruneJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *historyPruneJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
