package beerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/GooseZen/spring-6-resttemplate/beer"
	"github.com/GooseZen/spring-6-resttemplate/httpclient"
	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
	"github.com/GooseZen/spring-6-resttemplate/paging"
)

// Resource paths, relative to the base URL.
const (
	BeerPath     = "/api/v1/beer/"
	BeerByIDPath = "/api/v1/beer/{beerId}"
)

const (
	maxBodyBytes    = 4 << 20
	maxErrorBodyLen = 512
)

// Client is a typed client for the beer API. Every request is authorized through an
// httpclient.Authorizer before it is sent. Client is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	authorizer *httpclient.Authorizer
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used to send requests. The Client authorizes every
// request itself, so hc must not authorize them again: build it without
// httpclient.Builder.WithTokenSource or WithOAuth2. New rejects a client whose transport is an
// *httpclient.AuthorizingTransport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request tracing. Requests are logged at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the API rooted at baseURL, authorizing requests with tokens.
func New(baseURL string, tokens oauth2client.TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("beerclient: token source is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("beerclient: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("beerclient: base URL %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("beerclient: base URL %q has no host", baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		baseURL:    u,
		authorizer: httpclient.NewAuthorizer(tokens),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		if _, ok := c.httpClient.Transport.(*httpclient.AuthorizingTransport); ok {
			return nil, errors.New("beerclient: HTTP client already authorizes requests")
		}
	} else {
		hc, err := httpclient.NewBuilder().Build()
		if err != nil {
			return nil, fmt.Errorf("beerclient: %w", err)
		}
		c.httpClient = hc
	}

	return c, nil
}

// List returns one page of beers. A nil filter lists with server defaults.
func (c *Client) List(ctx context.Context, filter *ListFilter) (paging.Page[beer.Beer], error) {
	const op = "list"

	if err := filter.validate(op); err != nil {
		return paging.Page[beer.Beer]{}, err
	}

	resp, err := c.do(ctx, op, http.MethodGet, c.resolve(BeerPath, filter.encode()), nil)
	if err != nil {
		return paging.Page[beer.Beer]{}, err
	}
	if err := resp.check(op, uuid.Nil); err != nil {
		return paging.Page[beer.Beer]{}, err
	}

	return paging.Decode[beer.Beer](resp.body)
}

// GetByID fetches a single beer.
func (c *Client) GetByID(ctx context.Context, id uuid.UUID) (beer.Beer, error) {
	const op = "get"

	if id == uuid.Nil {
		return beer.Beer{}, &InvalidArgumentError{Op: op, Field: "id", Reason: "must be set"}
	}

	return c.fetch(ctx, op, c.itemURL(id), id)
}

// Create stores a new beer and returns the server's representation. When the server answers
// with only a Location, the beer is fetched from there. A failure after the server accepted the
// beer is reported as *PartialSuccessError.
func (c *Client) Create(ctx context.Context, b beer.Beer) (beer.Beer, error) {
	const op = "create"

	payload := b.WithoutID()
	if err := payload.Validate(); err != nil {
		return beer.Beer{}, invalidBeer(op, err)
	}

	resp, err := c.do(ctx, op, http.MethodPost, c.resolve(BeerPath, ""), payload)
	if err != nil {
		return beer.Beer{}, err
	}
	if err := resp.check(op, uuid.Nil); err != nil {
		return beer.Beer{}, err
	}

	if len(bytes.TrimSpace(resp.body)) > 0 {
		created, err := decodeBeer(resp.body)
		if err != nil {
			location := resp.header.Get("Location")
			err = &PartialSuccessError{Op: op, ID: idFromLocation(location), Location: location, Err: err}
			c.logger.Warn().Err(err).Str("op", op).Msg("create not confirmed")
			return beer.Beer{}, err
		}
		return created, nil
	}

	location := resp.header.Get("Location")
	if location == "" {
		err := &PartialSuccessError{Op: op, Err: errors.New("response has neither a body nor a Location header")}
		c.logger.Warn().Err(err).Str("op", op).Msg("create not confirmed")
		return beer.Beer{}, err
	}

	id := idFromLocation(location)
	target, err := c.resolveLocation(location)
	if err != nil {
		err = &PartialSuccessError{Op: op, ID: id, Location: location, Err: err}
		c.logger.Warn().Err(err).Str("op", op).Str("location", location).Msg("create not confirmed")
		return beer.Beer{}, err
	}

	created, err := c.fetch(ctx, op, target, id)
	if err != nil {
		err = &PartialSuccessError{Op: op, ID: id, Location: location, Err: err}
		c.logger.Warn().Err(err).Str("op", op).Str("location", location).Msg("create not confirmed")
		return beer.Beer{}, err
	}

	return created, nil
}

// Update replaces the beer identified by b.ID and returns the stored representation, which is
// always fetched after the write.
func (c *Client) Update(ctx context.Context, b beer.Beer) (beer.Beer, error) {
	const op = "update"

	if !b.HasID() {
		return beer.Beer{}, &InvalidArgumentError{Op: op, Field: "id", Reason: "must be set"}
	}
	if err := b.Validate(); err != nil {
		return beer.Beer{}, invalidBeer(op, err)
	}

	target := c.itemURL(b.ID)
	resp, err := c.do(ctx, op, http.MethodPut, target, b)
	if err != nil {
		return beer.Beer{}, err
	}
	if err := resp.check(op, b.ID); err != nil {
		return beer.Beer{}, err
	}

	updated, err := c.fetch(ctx, op, target, b.ID)
	if err != nil {
		err = &PartialSuccessError{Op: op, ID: b.ID, Err: err}
		c.logger.Warn().Err(err).Str("op", op).Stringer("beer_id", b.ID).Msg("update not confirmed")
		return beer.Beer{}, err
	}

	return updated, nil
}

// Delete removes a beer.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "delete"

	if id == uuid.Nil {
		return &InvalidArgumentError{Op: op, Field: "id", Reason: "must be set"}
	}

	resp, err := c.do(ctx, op, http.MethodDelete, c.itemURL(id), nil)
	if err != nil {
		return err
	}
	return resp.check(op, id)
}

func (c *Client) fetch(ctx context.Context, op, target string, id uuid.UUID) (beer.Beer, error) {
	resp, err := c.do(ctx, op, http.MethodGet, target, nil)
	if err != nil {
		return beer.Beer{}, err
	}
	if err := resp.check(op, id); err != nil {
		return beer.Beer{}, err
	}
	return decodeBeer(resp.body)
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) do(ctx context.Context, op, method, target string, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("beerclient: %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("beerclient: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authorized, err := c.authorizer.Authorize(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", op).Msg("authorization failed")
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(authorized)
	if err != nil {
		return nil, fmt.Errorf("beerclient: %s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("beerclient: %s: read response: %w", op, err)
	}
	if len(data) > maxBodyBytes {
		return nil, fmt.Errorf("beerclient: %s: %w (limit %d bytes)", op, ErrResponseTooLarge, maxBodyBytes)
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("beer api request")

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (r *response) check(op string, id uuid.UUID) error {
	switch {
	case r.status >= 200 && r.status < 300:
		return nil
	case r.status == http.StatusNotFound:
		return &NotFoundError{Op: op, ID: id}
	default:
		return &UpstreamError{Op: op, ID: id, StatusCode: r.status, Body: excerpt(r.body)}
	}
}

func (c *Client) resolve(p, rawQuery string) string {
	u := *c.baseURL
	u.Path += p
	u.RawQuery = rawQuery
	return u.String()
}

func (c *Client) itemURL(id uuid.UUID) string {
	return c.resolve(strings.Replace(BeerByIDPath, "{beerId}", id.String(), 1), "")
}

// resolveLocation keeps only the path and query of a Location reference, so follow-ups go to
// the configured API host.
func (c *Client) resolveLocation(location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid Location %q: %w", location, err)
	}
	if ref.Path == "" {
		return "", fmt.Errorf("location %q has no path", location)
	}

	base := *c.baseURL
	base.Path += "/"
	return base.ResolveReference(&url.URL{Path: ref.Path, RawQuery: ref.RawQuery}).String(), nil
}

func idFromLocation(location string) uuid.UUID {
	ref, err := url.Parse(location)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(path.Base(ref.Path))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func decodeBeer(data []byte) (beer.Beer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return beer.Beer{}, &MalformedResponseError{Reason: "empty body"}
	}

	var b beer.Beer
	if err := json.Unmarshal(data, &b); err != nil {
		return beer.Beer{}, &MalformedResponseError{Reason: "invalid beer", Err: err}
	}
	return b, nil
}

func invalidBeer(op string, err error) error {
	var verr *beer.ValidationError
	if errors.As(err, &verr) {
		return &InvalidArgumentError{Op: op, Field: strings.Join(verr.FieldNames(), ","), Reason: verr.Error(), Err: err}
	}
	return &InvalidArgumentError{Op: op, Field: "beer", Reason: err.Error(), Err: err}
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyLen {
		return s[:maxErrorBodyLen] + "..."
	}
	return s
}
