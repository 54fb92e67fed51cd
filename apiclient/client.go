// Package apiclient talks to the storefront REST API. It owns the token pair, attaches the
// Bearer header, and recovers from an expired access token with one refresh and one retry.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-storefront-client/internal/config"
	apperrors "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/models"
	"github.com/jrsteele09/go-storefront-client/session"
	"github.com/jrsteele09/go-storefront-client/token"
)

// Client is safe for concurrent use. Concurrent 401s share a single refresh call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	store      session.Store
	tokens     *token.Manager
	logger     zerolog.Logger
	refreshes  singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds every HTTP call, retries included. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New creates a client. The base URL is baseURL if set, else the apiBaseURL entry in store,
// else config.DefaultBaseURL. Tokens left in store by a previous session are restored.
func New(baseURL string, store session.Store, options ...Option) (*Client, error) {
	if store == nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "[apiclient New] store is required")
	}

	c := &Client{
		store:  store,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(c)
	}

	c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if c.baseURL == "" {
		c.baseURL = session.BaseURL(store)
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultBaseURL
	}

	// Copy so WithTimeout never mutates a caller's client.
	httpClient := http.Client{}
	if c.httpClient != nil {
		httpClient = *c.httpClient
	}
	if c.timeout > 0 {
		httpClient.Timeout = c.timeout
	}
	c.httpClient = &httpClient

	tokens, err := token.NewManager(store, token.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("[apiclient New] %w", err)
	}
	c.tokens = tokens
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Tokens exposes the credential manager.
func (c *Client) Tokens() *token.Manager {
	return c.tokens
}

// SetTokens replaces both tokens and marks the session as logged in.
func (c *Client) SetTokens(access, refresh string) error {
	return c.tokens.SetTokens(access, refresh)
}

// ClearTokens forgets both tokens and removes them from the store.
func (c *Client) ClearTokens() error {
	return c.tokens.Clear()
}

// IsAuthenticated reports whether an access token is held. It does not check expiry.
func (c *Client) IsAuthenticated() bool {
	return c.tokens.IsAuthenticated()
}

// CurrentUser decodes the access token, or returns nil.
func (c *Client) CurrentUser() *token.Identity {
	return c.tokens.CurrentUser()
}

type requestOptions struct {
	method      string
	body        any
	headers     http.Header
	includeAuth bool
	noRefresh   bool
}

type RequestOption func(*requestOptions)

func WithMethod(method string) RequestOption {
	return func(o *requestOptions) {
		o.method = method
	}
}

// WithBody sends v encoded as JSON.
func WithBody(v any) RequestOption {
	return func(o *requestOptions) {
		o.body = v
	}
}

// WithHeader sets a header after the defaults, so it can replace Content-Type or Authorization.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// WithoutAuth omits the Authorization header whatever the token state.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.includeAuth = false
	}
}

// withoutRefresh surfaces a 401 as-is. The refresh call uses it so it never refreshes itself.
func withoutRefresh() RequestOption {
	return func(o *requestOptions) {
		o.noRefresh = true
	}
}

// Request sends one call to path (relative to the base URL). On a 401 with a refresh token held it
// refreshes once and, if that worked, resends the identical request once. A non-2xx result is
// returned as *APIError with the body already consumed. Transport errors are returned unchanged.
// On success the caller must close the response body.
func (c *Client) Request(ctx context.Context, path string, options ...RequestOption) (*http.Response, error) {
	opts := requestOptions{
		method:      http.MethodGet,
		headers:     make(http.Header),
		includeAuth: true,
	}
	for _, opt := range options {
		opt(&opts)
	}

	var body []byte
	if opts.body != nil {
		var err error
		if body, err = json.Marshal(opts.body); err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", opts.method, path, err)
		}
	}

	sentToken := c.tokens.AccessToken()
	resp, err := c.send(ctx, path, &opts, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.noRefresh && c.tokens.RefreshToken() != "" {
		unauthorizedBody := drain(resp)
		refreshed, err := c.refresh(ctx, sentToken)
		if err != nil {
			return nil, err
		}
		if !refreshed {
			return nil, newAPIError(resp.StatusCode, unauthorizedBody)
		}
		// Second and final attempt. A 401 here is an ordinary error.
		if resp, err = c.send(ctx, path, &opts, body); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, drain(resp))
		c.logger.Debug().Str("method", opts.method).Str("path", path).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, path string, opts *requestOptions, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", opts.method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if opts.includeAuth {
		c.tokens.SetAuthHeader(req)
	}
	for key, values := range opts.headers {
		req.Header[key] = values
	}

	return c.httpClient.Do(req)
}

// drain reads and closes body. Read errors leave a partial body, which newAPIError tolerates.
func drain(resp *http.Response) []byte {
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return data
}

// do runs Request and decodes a JSON response into out. A nil out discards the body.
func (c *Client) do(ctx context.Context, path string, out any, options ...RequestOption) error {
	resp, err := c.Request(ctx, path, options...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !apperrors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any, options ...RequestOption) error {
	return c.do(ctx, path, out, append(options, WithMethod(http.MethodGet))...)
}

func (c *Client) Post(ctx context.Context, path string, in, out any, options ...RequestOption) error {
	return c.do(ctx, path, out, append(options, WithMethod(http.MethodPost), WithBody(in))...)
}

func (c *Client) Put(ctx context.Context, path string, in, out any, options ...RequestOption) error {
	return c.do(ctx, path, out, append(options, WithMethod(http.MethodPut), WithBody(in))...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, options ...RequestOption) error {
	return c.do(ctx, path, out, append(options, WithMethod(http.MethodDelete))...)
}

// RefreshAccessToken exchanges the refresh token for a new access token. When the exchange fails
// both tokens are cleared and false is returned. It is the only involuntary logout. A caller whose
// ctx ends first gets false and the tokens are left alone.
func (c *Client) RefreshAccessToken(ctx context.Context) bool {
	refreshed, _ := c.refresh(ctx, c.tokens.AccessToken())
	return refreshed
}

// refresh coalesces concurrent callers into one refresh call. staleToken is the access token the
// caller's rejected request carried; if it has already been replaced no new call is made.
// The shared exchange ignores the cancellation of whichever caller started it, so one caller
// giving up cannot log out the others. The caller's own ctx.Err() is returned when it ends first.
func (c *Client) refresh(ctx context.Context, staleToken string) (bool, error) {
	exchangeCtx := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		if current := c.tokens.AccessToken(); current != "" && current != staleToken {
			return true, nil
		}
		return c.exchangeRefreshToken(exchangeCtx), nil
	})

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case result := <-ch:
		return result.Val.(bool), nil
	}
}

func (c *Client) exchangeRefreshToken(ctx context.Context) bool {
	err := func() error {
		refreshToken := c.tokens.RefreshToken()
		if refreshToken == "" {
			return apperrors.ErrNoRefreshToken
		}

		var out models.TokenResponse
		if err := c.Post(ctx, models.RouteRefreshToken, models.RefreshTokenRequest{RefreshToken: refreshToken}, &out,
			WithoutAuth(), withoutRefresh()); err != nil {
			return err
		}
		if out.AccessToken == "" {
			return apperrors.Wrapf(apperrors.ErrRefreshFailed, "response has no access_token")
		}
		if out.RefreshToken != "" {
			return c.tokens.SetTokens(out.AccessToken, out.RefreshToken)
		}
		return c.tokens.SetAccessToken(out.AccessToken)
	}()
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		c.logger.Err(err).Msg("token refresh abandoned")
		return false
	}

	c.logger.Err(err).Msg("token refresh failed, logging out")
	if err := c.tokens.Clear(); err != nil {
		c.logger.Err(err).Msg("failed to clear tokens")
	}
	return false
}
