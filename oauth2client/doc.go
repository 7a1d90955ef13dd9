// Package oauth2client provides an OAuth2 client-credentials token provider for HTTP clients.
//
// It caches bearer tokens, refreshes them before expiry, and exposes them through the
// TokenSource interface consumed by httpclient.Authorizer. Token fetches honor contexts for
// cancellation, are safe for concurrent use, and can log refresh events via an optional Logger.
//
// # Features
//
//   - Client-credentials flow with caching and early refresh (WithExpiryLeeway)
//   - Lock-free reads of the cached token; concurrent refreshes collapse into one exchange
//   - Expiry taken from expires_in, or from the exp claim of JWT access tokens
//   - Typed AuthenticationError for rejected grants and unreachable token endpoints
//   - StaticTokenSource for tests and local development
//   - Optional logging (WithLogger, WithLoggingEnabled)
//
// # Quick Start
//
//	tp := oauth2client.NewTokenProvider(
//	    ctx,
//	    "https://auth.example.com/oauth2/token",
//	    "messaging-client",
//	    "secret",
//	    "message.read message.write",
//	    oauth2client.WithLoggingEnabled(),
//	)
//
//	token, err := tp.CurrentToken(ctx)
//	if err != nil {
//	    var authErr *oauth2client.AuthenticationError
//	    if errors.As(err, &authErr) {
//	        // credentials rejected or token endpoint unreachable
//	    }
//	}
//	req.Header.Set("Authorization", token.AuthorizationHeader())
//
// # Notes
//
//   - An expired token is never returned. While one caller refreshes, others holding a
//     not-yet-expired token keep using it.
//   - Refresh forces a new exchange; Invalidate drops the cached token.
package oauth2client
