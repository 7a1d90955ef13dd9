// Package testutil provides shared test helpers for the beer API client.
//
// NewLocalHTTPServer starts an httptest server bound to IPv4 loopback.
// MockOAuth2Server stands in for a token endpoint by swapping the default
// HTTP transport. FakeBeerAPI is an in-memory beer service that also serves
// the client credentials token endpoint, records every API request and
// rejects calls that lack a valid Bearer token.
//
// The package also writes throwaway CA and client certificates for TLS tests.
package testutil
