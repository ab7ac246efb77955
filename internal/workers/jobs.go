// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-merchant-verify/internal/service"
)

// tokenRefreshWorker adapts the background token refresh job to the Worker
// interface.
type tokenRefreshWorker struct {
	ctx      context.Context
	job      service.TokenRefreshJob
	interval time.Duration
}

// NewTokenRefreshWorker wraps job so the aggregate can run it. A zero
// interval selects the job default.
func NewTokenRefreshWorker(ctx context.Context, job service.TokenRefreshJob, interval time.Duration) Worker {
	return &tokenRefreshWorker{ctx: ctx, job: job, interval: interval}
}

func (w *tokenRefreshWorker) Run() {
	w.job.Start(w.ctx, w.interval)
}

func (w *tokenRefreshWorker) Stop() {
	w.job.Stop()
}

// historyPruneWorker adapts the history pruner job to the Worker interface.
type historyPruneWorker struct {
	ctx      context.Context
	job      service.HistoryPruneJob
	interval time.Duration
	keep     int
}

// NewHistoryPruneWorker wraps job so the aggregate can run it. Zero interval
// and keep select the job defaults.
func NewHistoryPruneWorker(ctx context.Context, job service.HistoryPruneJob, interval time.Duration, keep int) Worker {
	return &historyPruneWorker{ctx: ctx, job: job, interval: interval, keep: keep}
}

func (w *historyPruneWorker) Run() {
	w.job.Start(w.ctx, w.interval, w.keep)
}

func (w *historyPruneWorker) Stop() {
	w.job.Stop()
}
