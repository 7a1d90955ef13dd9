// Package config loads beer API client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "BEER"

// Environment variable names.
const (
	EnvAPIBaseURL            = "BEER_API_BASE_URL"
	EnvAPITimeout            = "BEER_API_TIMEOUT"
	EnvOAuth2TokenURL        = "BEER_OAUTH2_TOKEN_URL"
	EnvOAuth2ClientID        = "BEER_OAUTH2_CLIENT_ID"
	EnvOAuth2ClientSecret    = "BEER_OAUTH2_CLIENT_SECRET"
	EnvOAuth2Scopes          = "BEER_OAUTH2_SCOPES"
	EnvOAuth2ExpiryLeeway    = "BEER_OAUTH2_EXPIRY_LEEWAY"
	EnvTLSCAFile             = "BEER_TLS_CA_FILE"
	EnvTLSCertFile           = "BEER_TLS_CERT_FILE"
	EnvTLSKeyFile            = "BEER_TLS_KEY_FILE"
	EnvTLSInsecureSkipVerify = "BEER_TLS_INSECURE_SKIP_VERIFY"
	EnvLogLevel              = "BEER_LOG_LEVEL"
	EnvLogFormat             = "BEER_LOG_FORMAT"
)

type Config struct {
	API    APIConfig
	OAuth2 OAuth2Config
	TLS    TLSConfig
	Log    LogConfig
}

type APIConfig struct {
	BaseURL string        `envconfig:"BEER_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"BEER_API_TIMEOUT" default:"30s"`
}

type OAuth2Config struct {
	TokenURL     string        `envconfig:"BEER_OAUTH2_TOKEN_URL" required:"true"`
	ClientID     string        `envconfig:"BEER_OAUTH2_CLIENT_ID" required:"true"`
	ClientSecret string        `envconfig:"BEER_OAUTH2_CLIENT_SECRET" required:"true"`
	Scopes       string        `envconfig:"BEER_OAUTH2_SCOPES"`
	ExpiryLeeway time.Duration `envconfig:"BEER_OAUTH2_EXPIRY_LEEWAY" default:"1m"`
}

type TLSConfig struct {
	CAFile             string `envconfig:"BEER_TLS_CA_FILE"`
	CertFile           string `envconfig:"BEER_TLS_CERT_FILE"`
	KeyFile            string `envconfig:"BEER_TLS_KEY_FILE"`
	InsecureSkipVerify bool   `envconfig:"BEER_TLS_INSECURE_SKIP_VERIFY" default:"false"`
}

// Enabled reports whether any TLS option was set.
func (t TLSConfig) Enabled() bool {
	return t.CAFile != "" || t.CertFile != "" || t.KeyFile != ""
}

type LogConfig struct {
	Level  string `envconfig:"BEER_LOG_LEVEL" default:"info"`
	Format string `envconfig:"BEER_LOG_FORMAT" default:"json"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error

	if err := validateHTTPURL(EnvAPIBaseURL, c.API.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateHTTPURL(EnvOAuth2TokenURL, c.OAuth2.TokenURL); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.OAuth2.ClientID) == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", EnvOAuth2ClientID))
	}
	if c.OAuth2.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", EnvOAuth2ClientSecret))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvAPITimeout))
	}
	if c.OAuth2.ExpiryLeeway < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative", EnvOAuth2ExpiryLeeway))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, fmt.Errorf("%s and %s must be set together", EnvTLSCertFile, EnvTLSKeyFile))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%s must be json or console, got %q", EnvLogFormat, c.Log.Format))
	}

	return errors.Join(errs...)
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}
