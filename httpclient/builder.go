package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/GooseZen/spring-6-resttemplate/config"
	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
)

const (
	// DefaultTimeout bounds every request made by clients from this package.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is how many redirects a built client follows.
	DefaultMaxRedirects = 10
)

// ErrUnsupportedBaseTransport is returned by Build when TLS options are set but the base
// transport is not an *http.Transport they could be applied to.
var ErrUnsupportedBaseTransport = errors.New("httpclient: TLS options require an *http.Transport base")

// TLSOptions selects the certificates used to reach the beer API.
type TLSOptions struct {
	// CAFile verifies the server. System roots are used when empty.
	CAFile string
	// CertFile and KeyFile enable mTLS and must be set together.
	CertFile string
	KeyFile  string
	// InsecureSkipVerify disables server verification.
	InsecureSkipVerify bool
}

func (o TLSOptions) enabled() bool {
	return o.CAFile != "" || o.CertFile != "" || o.KeyFile != "" || o.InsecureSkipVerify
}

func (o TLSOptions) config() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: o.InsecureSkipVerify, // #nosec G402
	}

	if o.CAFile != "" {
		pemBytes, err := os.ReadFile(o.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pemBytes) {
			return nil, fmt.Errorf("no certificates found in %s", o.CAFile)
		}
		cfg.RootCAs = pool
	}

	switch {
	case o.CertFile != "" && o.KeyFile != "":
		cert, err := tls.LoadX509KeyPair(o.CertFile, o.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	case o.CertFile != "" || o.KeyFile != "":
		return nil, errors.New("both TLS cert and key files must be provided for mTLS")
	}

	return cfg, nil
}

// Builder assembles the *http.Client used by the beer client.
type Builder struct {
	tokens       oauth2client.TokenSource
	tls          TLSOptions
	timeout      time.Duration
	base         http.RoundTripper
	maxRedirects int
}

// NewBuilder creates a builder with DefaultTimeout and DefaultMaxRedirects.
func NewBuilder() *Builder {
	return &Builder{
		timeout:      DefaultTimeout,
		maxRedirects: DefaultMaxRedirects,
	}
}

// FromConfig returns a builder preset with the API timeout and TLS settings of cfg.
func FromConfig(cfg *config.Config) *Builder {
	return NewBuilder().
		WithTimeout(cfg.API.Timeout).
		WithTLSOptions(TLSOptions{
			CAFile:             cfg.TLS.CAFile,
			CertFile:           cfg.TLS.CertFile,
			KeyFile:            cfg.TLS.KeyFile,
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		})
}

// WithTokenSource makes the built client authorize every request with tokens from ts.
// Leave it unset for clients handed to beerclient, which authorizes on its own.
func (b *Builder) WithTokenSource(ts oauth2client.TokenSource) *Builder {
	b.tokens = ts
	return b
}

// WithOAuth2 is WithTokenSource with a new client credentials TokenProvider.
func (b *Builder) WithOAuth2(ctx context.Context, tokenURL, clientID, clientSecret, scopes string, opts ...oauth2client.Option) *Builder {
	b.tokens = oauth2client.NewTokenProvider(ctx, tokenURL, clientID, clientSecret, scopes, opts...)
	return b
}

// WithTLS sets the CA and the optional client certificate pair. Other TLS options are kept.
func (b *Builder) WithTLS(caFile, certFile, keyFile string) *Builder {
	b.tls.CAFile = caFile
	b.tls.CertFile = certFile
	b.tls.KeyFile = keyFile
	return b
}

// WithTLSOptions replaces all TLS options.
func (b *Builder) WithTLSOptions(opts TLSOptions) *Builder {
	b.tls = opts
	return b
}

// WithInsecureSkipVerify disables TLS certificate verification (NOT RECOMMENDED for production).
func (b *Builder) WithInsecureSkipVerify() *Builder {
	b.tls.InsecureSkipVerify = true
	return b
}

// WithTimeout sets the overall request timeout. Zero disables it.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = timeout
	return b
}

// WithBaseTransport sets the transport requests are sent with. TLS options are applied to a
// clone of it, so it must be an *http.Transport when any are set.
func (b *Builder) WithBaseTransport(transport http.RoundTripper) *Builder {
	b.base = transport
	return b
}

// WithMaxRedirects limits how many redirects are followed. Once the limit is reached the
// redirect response itself is returned.
func (b *Builder) WithMaxRedirects(n int) *Builder {
	b.maxRedirects = max(n, 0)
	return b
}

// WithoutRedirects returns every redirect response to the caller unfollowed.
func (b *Builder) WithoutRedirects() *Builder {
	return b.WithMaxRedirects(0)
}

// Build constructs the HTTP client.
func (b *Builder) Build() (*http.Client, error) {
	transport, err := b.transport()
	if err != nil {
		return nil, err
	}

	if b.tokens != nil {
		transport = NewAuthorizingTransport(b.tokens, transport)
	}

	return &http.Client{
		Transport:     transport,
		Timeout:       b.timeout,
		CheckRedirect: redirectPolicy(b.maxRedirects),
	}, nil
}

func (b *Builder) transport() (http.RoundTripper, error) {
	custom := b.base != nil
	base := b.base
	if !custom {
		base = http.DefaultTransport
	}

	ht, ok := base.(*http.Transport)
	if !ok {
		// Test doubles installed as http.DefaultTransport are used unchanged.
		if b.tls.enabled() {
			return nil, ErrUnsupportedBaseTransport
		}
		return base, nil
	}
	if custom && !b.tls.enabled() {
		return ht, nil
	}

	tlsConfig, err := b.tls.config()
	if err != nil {
		return nil, fmt.Errorf("httpclient: TLS config failed: %w", err)
	}
	ht = ht.Clone()
	ht.TLSClientConfig = tlsConfig
	return ht, nil
}

func redirectPolicy(limit int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > limit {
			return http.ErrUseLastResponse
		}
		return nil
	}
}

// NewHTTPClient returns a client with default settings that authorizes every request with
// tokens from ts.
func NewHTTPClient(ts oauth2client.TokenSource) *http.Client {
	return &http.Client{
		Transport:     NewAuthorizingTransport(ts, nil),
		Timeout:       DefaultTimeout,
		CheckRedirect: redirectPolicy(DefaultMaxRedirects),
	}
}
