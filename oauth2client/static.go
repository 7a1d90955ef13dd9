package oauth2client

import (
	"context"
	"errors"
	"time"
)

// StaticTokenSource always returns the same never-expiring token.
// It stands in for an authorization server in tests and local development.
type StaticTokenSource struct {
	Token AccessToken
}

// NewStaticTokenSource wraps value in a never-expiring bearer token.
func NewStaticTokenSource(value string) *StaticTokenSource {
	return &StaticTokenSource{
		Token: AccessToken{
			Value:    value,
			Type:     "Bearer",
			IssuedAt: time.Now(),
		},
	}
}

// CurrentToken returns the static token.
func (s *StaticTokenSource) CurrentToken(_ context.Context) (AccessToken, error) {
	if s == nil || s.Token.Value == "" {
		return AccessToken{}, &AuthenticationError{Err: errors.New("static token is empty")}
	}
	return s.Token, nil
}
