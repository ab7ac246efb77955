package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for talking to the verification API.
// It embeds *resty.Client so the full resty surface stays available,
// while giving the adapter a single place to hang shared behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://verify.example.com/api/health")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a new HTTPClient with JSON content negotiation
// preset; every verification API endpoint speaks JSON, so callers only
// configure the base URL, timeout, and retry policy on top.
//
// Each call returns an independent client with its own configuration,
// connection pool, and state.
func NewHTTPClient() *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &HTTPClient{Client: c}
}
