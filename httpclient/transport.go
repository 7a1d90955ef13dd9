package httpclient

import (
	"errors"
	"net/http"

	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
)

// ErrNoTokenSource is returned when an Authorizer has nothing to fetch tokens from.
var ErrNoTokenSource = errors.New("httpclient: token source is nil")

// Authorizer attaches OAuth2 bearer tokens to outgoing requests.
type Authorizer struct {
	// Tokens provides OAuth2 access tokens.
	Tokens oauth2client.TokenSource
}

// NewAuthorizer creates an Authorizer backed by the given token source.
func NewAuthorizer(tokens oauth2client.TokenSource) *Authorizer {
	return &Authorizer{Tokens: tokens}
}

// Authorize returns a copy of req carrying "Authorization: Bearer <token>".
// The original request is not modified. Token errors are returned unchanged, so a failed
// exchange surfaces as *oauth2client.AuthenticationError and no request should be sent.
// The token fetch respects the request context's cancellation and deadline.
func (a *Authorizer) Authorize(req *http.Request) (*http.Request, error) {
	if a == nil || a.Tokens == nil {
		return nil, ErrNoTokenSource
	}

	token, err := a.Tokens.CurrentToken(req.Context())
	if err != nil {
		return nil, err
	}

	// Clone the request to avoid modifying the original
	reqClone := req.Clone(req.Context())
	reqClone.Header.Set("Authorization", token.AuthorizationHeader())

	return reqClone, nil
}

// AuthorizingTransport is an http.RoundTripper that authorizes every request
// before delegating to Base.
type AuthorizingTransport struct {
	// Base is the underlying HTTP transport. If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	// Authorizer attaches the bearer token.
	Authorizer *Authorizer
}

// RoundTrip implements http.RoundTripper interface.
func (t *AuthorizingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authorized, err := t.Authorizer.Authorize(req)
	if err != nil {
		closeRequestBody(req)
		return nil, err
	}

	// Use base transport or default
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(authorized)
}

// NewAuthorizingTransport creates a transport that authorizes requests with tokens from ts.
// The base transport defaults to http.DefaultTransport if not specified.
func NewAuthorizingTransport(ts oauth2client.TokenSource, base http.RoundTripper) *AuthorizingTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	return &AuthorizingTransport{
		Base:       base,
		Authorizer: NewAuthorizer(ts),
	}
}

// closeRequestBody honors the RoundTripper contract of closing the body on error.
func closeRequestBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
