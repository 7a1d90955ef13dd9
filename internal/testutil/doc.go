// Package testutil provides internal test helpers for token handling.
//
// It signs JWT access tokens with fixed test keys and builds canned token endpoint responses
// (success with or without expires_in, OAuth2 error bodies) for use with RoundTripFunc stubs.
package testutil
