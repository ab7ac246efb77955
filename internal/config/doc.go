// Package config provides configuration loading, merging, and validation
// facilities for the merchant verification client.
//
// Configuration is assembled from multiple sources in the following priority
// order (an earlier source wins for every field it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Settings are grouped into sections mirroring the client's layers: Adapter
// (HTTP transport), Session (verification socket), Engine (challenge
// lifetime and lockout policy), Auth (token refresh), Crypto (key
// derivation), Storage (local history database), and Workers (background
// jobs).
//
// The main entry point is [GetStructuredConfig], which returns the merged and
// validated configuration for the client runtime.
package config
