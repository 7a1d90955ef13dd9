// Package httpclient offers HTTP client construction helpers with OAuth2 authentication and TLS/mTLS options.
//
// Authorizer is the explicit authorization step: given an outgoing request it returns a copy carrying
// "Authorization: Bearer <token>" taken from an oauth2client.TokenSource, or the token error unchanged.
// AuthorizingTransport applies it to every request of an http.Client, and the fluent Builder wires it
// together with TLS (custom CA, mTLS, insecure for tests), timeouts, base transports and redirect handling.
//
// # Features
//
//   - Explicit per-request authorization via Authorizer.Authorize
//   - Fluent builder for http.Client with optional token injection
//   - TLS 1.2+ by default, with custom CA/mTLS and optional InsecureSkipVerify
//   - FromConfig presets timeout and TLS from config.Config
//   - Custom timeouts, base transport override (TLS applied to a clone), and a redirect limit
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithOAuth2(ctx,
//	        "http://localhost:9000/oauth2/token",
//	        "messaging-client",
//	        "secret",
//	        "message.read message.write",
//	    ).
//	    WithTLS("/path/to/ca.crt", "", "").
//	    WithTimeout(60 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Manual Authorization
//
//	authorizer := httpclient.NewAuthorizer(tokenProvider)
//	authorized, err := authorizer.Authorize(req)
//	if err != nil {
//	    return err // *oauth2client.AuthenticationError when the token exchange failed
//	}
//	resp, err := http.DefaultClient.Do(authorized)
//
// All components are safe for concurrent use if the provided TokenSource is.
package httpclient
