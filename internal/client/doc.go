// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the merchant verification client runtime.
//
// It ties the restored auth session, the verification engine's event stream,
// and the background workers (token refresh, history pruning) into a single
// process lifecycle with signal-driven graceful shutdown.
package client
