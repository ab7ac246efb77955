// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract of the runnable client process. A front
// end embedding the verification core implements the same contract.
type Client interface {
	// Run starts the client, blocks until a stop signal, and returns after
	// the core has shut down.
	Run() error
}
