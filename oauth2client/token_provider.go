package oauth2client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "client-credentials"

// Logger is an interface for optional logging in TokenProvider.
// Implementations can log token refresh events if desired. *zerolog.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// TokenSource yields a currently valid access token.
type TokenSource interface {
	CurrentToken(ctx context.Context) (AccessToken, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (AccessToken, error)

// CurrentToken calls f.
func (f TokenSourceFunc) CurrentToken(ctx context.Context) (AccessToken, error) {
	return f(ctx)
}

// AccessToken is a bearer credential obtained from the authorization server.
type AccessToken struct {
	Value     string
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero means the token never expires
}

// NeverExpires reports whether the token carries no expiry.
func (t AccessToken) NeverExpires() bool {
	return t.ExpiresAt.IsZero()
}

// ExpiredAt reports whether the token is no longer valid at now.
func (t AccessToken) ExpiredAt(now time.Time) bool {
	return !t.NeverExpires() && !now.Before(t.ExpiresAt)
}

// AuthorizationHeader returns the value for the Authorization request header.
func (t AccessToken) AuthorizationHeader() string {
	return "Bearer " + t.Value
}

// AuthenticationError reports a failed client-credentials exchange: the grant was rejected,
// the token endpoint was unreachable, or it answered with an unusable token.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("oauth2: failed to fetch token: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TokenProvider obtains OAuth2 tokens with the client credentials flow and caches them
// until they approach expiry. It is safe for concurrent access.
type TokenProvider struct {
	config       *clientcredentials.Config
	cached       atomic.Pointer[AccessToken]
	refreshing   atomic.Bool
	group        singleflight.Group
	ctx          context.Context // fallback context for nil callers
	expiryLeeway time.Duration
	logger       Logger // optional logger
	now          func() time.Time
}

// Option is a functional option for configuring TokenProvider.
type Option func(*TokenProvider)

// WithLogger sets a custom logger for token refresh events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(p *TokenProvider) {
		p.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
func WithLoggingEnabled() Option {
	return func(p *TokenProvider) {
		p.logger = log.Default()
	}
}

// WithExpiryLeeway sets how long before expiry a cached token is replaced.
// Negative values are treated as zero.
func WithExpiryLeeway(d time.Duration) Option {
	return func(p *TokenProvider) {
		if d < 0 {
			d = 0
		}
		p.expiryLeeway = d
	}
}

// WithClock replaces the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(p *TokenProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewTokenProvider creates a token provider using the client credentials flow.
//
// Parameters:
//   - ctx: Context whose values (e.g. oauth2.HTTPClient) are used when callers pass a nil context
//   - tokenURL: OAuth2 token endpoint (e.g., "https://auth.example.com/oauth2/token")
//   - clientID: OAuth2 client identifier
//   - clientSecret: OAuth2 client secret
//   - scopes: Space-separated list of OAuth2 scopes (e.g., "message.read message.write")
//   - opts: Optional configuration options
func NewTokenProvider(ctx context.Context, tokenURL, clientID, clientSecret, scopes string, opts ...Option) *TokenProvider {
	// Split scopes by whitespace to avoid sending a single concatenated scope.
	scopesList := strings.Fields(scopes)

	if ctx == nil {
		ctx = context.Background()
	} else {
		ctx = context.WithoutCancel(ctx)
	}

	p := &TokenProvider{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopesList,
		},
		ctx:          ctx,
		expiryLeeway: time.Minute,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// CurrentToken returns a valid access token, exchanging client credentials when nothing is
// cached or the cached token has entered the leeway window before expiry.
//
// While another caller is refreshing, a cached token that has not yet expired is returned
// immediately. An expired token is never returned.
func (p *TokenProvider) CurrentToken(ctx context.Context) (AccessToken, error) {
	if ctx == nil {
		ctx = p.ctx
	}

	now := p.now()
	if tok := p.cached.Load(); tok != nil && !tok.ExpiredAt(now) {
		if !p.dueForRefresh(*tok, now) {
			return *tok, nil
		}
		if p.refreshing.Load() {
			return *tok, nil
		}
	}

	return p.refresh(ctx)
}

// Refresh discards the cached token and fetches a fresh one.
func (p *TokenProvider) Refresh(ctx context.Context) (AccessToken, error) {
	if ctx == nil {
		ctx = p.ctx
	}
	p.Invalidate()
	return p.refresh(ctx)
}

// Invalidate discards the cached token. The next CurrentToken call fetches a new one.
func (p *TokenProvider) Invalidate() {
	p.cached.Store(nil)
}

func (p *TokenProvider) refresh(ctx context.Context) (AccessToken, error) {
	v, err, _ := p.group.Do(refreshKey, func() (any, error) {
		p.refreshing.Store(true)
		defer p.refreshing.Store(false)

		// Double-check: a refresh that finished after our fast path may already have stored one.
		if tok := p.cached.Load(); tok != nil && p.usable(*tok, p.now()) {
			return *tok, nil
		}

		tok, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		p.cached.Store(&tok)
		return tok, nil
	})
	if err != nil {
		return AccessToken{}, err
	}
	return v.(AccessToken), nil
}

func (p *TokenProvider) fetch(ctx context.Context) (AccessToken, error) {
	issuedAt := p.now()

	token, err := p.config.Token(ctx)
	if err != nil {
		return AccessToken{}, &AuthenticationError{Err: err}
	}
	if token.AccessToken == "" {
		return AccessToken{}, &AuthenticationError{Err: errors.New("token endpoint returned an empty access token")}
	}

	tok := AccessToken{
		Value:     token.AccessToken,
		Type:      token.Type(),
		IssuedAt:  issuedAt,
		ExpiresAt: token.Expiry,
	}

	if times, ok := jwtTimes(token.AccessToken); ok {
		if !times.issuedAt.IsZero() {
			tok.IssuedAt = times.issuedAt
		}
		if tok.ExpiresAt.IsZero() {
			tok.ExpiresAt = times.expiresAt
		}
	}

	if tok.ExpiredAt(p.now()) {
		return AccessToken{}, &AuthenticationError{Err: fmt.Errorf("token endpoint returned a token that expired at %s", tok.ExpiresAt.Format(time.RFC3339))}
	}

	if p.logger != nil {
		expires := "never"
		if !tok.NeverExpires() {
			expires = tok.ExpiresAt.Format(time.RFC3339)
		}
		p.logger.Printf("oauth2: obtained new access token (expires: %s)", expires)
	}

	return tok, nil
}

func (p *TokenProvider) usable(tok AccessToken, now time.Time) bool {
	return !tok.ExpiredAt(now) && !p.dueForRefresh(tok, now)
}

// dueForRefresh reports whether the token is inside the leeway window before expiry.
// The window never exceeds half the token's lifetime, so short-lived tokens are still reused.
func (p *TokenProvider) dueForRefresh(tok AccessToken, now time.Time) bool {
	if tok.NeverExpires() {
		return false
	}
	return tok.ExpiresAt.Sub(now) <= p.leewayFor(tok)
}

func (p *TokenProvider) leewayFor(tok AccessToken) time.Duration {
	leeway := p.expiryLeeway
	if tok.IssuedAt.IsZero() || !tok.ExpiresAt.After(tok.IssuedAt) {
		return leeway
	}
	if half := tok.ExpiresAt.Sub(tok.IssuedAt) / 2; half < leeway {
		return half
	}
	return leeway
}
