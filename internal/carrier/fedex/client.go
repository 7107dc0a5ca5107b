package fedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/circuitbreaker"
	"github.com/shipquote/rate-service/internal/metrics"
	"github.com/shipquote/rate-service/internal/packing"
)

// Carrier API paths.
const (
	pathToken             = "/oauth/token"
	pathRateQuotes        = "/rate/v1/rates/quotes"
	pathShipments         = "/ship/v1/shipments"
	pathTrack             = "/track/v1/trackingnumbers"
	pathAddressResolve    = "/address/v1/addresses/resolve"
	pathCancelShipment    = "/ship/v1/shipments/cancel"
	defaultBaseURL        = "https://apis.fedex.com"
	defaultRequestTimeout = 30 * time.Second
)

// Config holds carrier client configuration. Credentials left empty put
// the client in offline-estimate mode.
type Config struct {
	ClientID      string
	ClientSecret  string
	AccountNumber string
	// BaseURL overrides the production API host (sandbox, tests)
	BaseURL string
	// TestMode bypasses the network entirely and serves estimated rates
	TestMode bool
	// MarkupPercent is applied multiplicatively to all returned amounts
	MarkupPercent float64
	// UseIntelligentPacking runs the box packer before rating
	UseIntelligentPacking bool
	// EnabledServices is an allow-list filter; empty means all
	EnabledServices []string
	// RateTypes is the subset of {LIST, ACCOUNT, PREFERRED} to request
	RateTypes []string
	// SmartPostHubs maps destination state to the serving hub ID
	SmartPostHubs map[string]string
	// RequestTimeout bounds each HTTP call
	RequestTimeout time.Duration
	Retry          RetryPolicy
}

// Configured reports whether real carrier calls are possible.
func (c Config) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.AccountNumber != ""
}

// Client is the resilient carrier API client. It owns the OAuth token
// lifecycle and retry orchestration; the token source is the only state
// shared across concurrent requests.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     *tokenSource
	breaker    *circuitbreaker.CircuitBreaker
	packer     packing.Packer
	estimator  *carrier.Estimator
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient injects a custom HTTP client (tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithPacker injects the box packer used for intelligent packing.
func WithPacker(p packing.Packer) ClientOption {
	return func(c *Client) { c.packer = p }
}

// WithCircuitBreaker guards carrier calls with the given breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) ClientOption {
	return func(c *Client) { c.breaker = cb }
}

// NewClient creates a carrier client from the given configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Retry.MaxRetries == 0 && cfg.Retry.BaseDelay == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if len(cfg.RateTypes) == 0 {
		cfg.RateTypes = []string{"LIST", "ACCOUNT"}
	}

	c := &Client{
		cfg:       cfg,
		estimator: carrier.NewEstimator(cfg.MarkupPercent),
		logger:    log.With().Str("component", "fedex_client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	c.tokens = newTokenSource(c.fetchToken)

	if !cfg.Configured() && !cfg.TestMode {
		c.logger.Warn().Msg("No carrier credentials configured; serving estimated rates only")
	}
	return c
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// offline reports whether the client must not touch the network.
func (c *Client) offline() bool {
	return c.cfg.TestMode || !c.cfg.Configured()
}

// Authenticate ensures a valid token is cached. It is a no-op while the
// current token's buffered expiry is in the future.
func (c *Client) Authenticate(ctx context.Context) error {
	if c.offline() {
		return nil
	}
	_, err := c.tokens.Token(ctx)
	return err
}

// fetchToken exchanges client credentials for an access token.
func (c *Client) fetchToken(ctx context.Context) (*authToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+pathToken, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, carrier.ClassifyTransport(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, carrier.ClassifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &carrier.Error{Kind: carrier.KindUnknown, Message: fmt.Sprintf("decode token response: %v", err)}
	}
	if tr.AccessToken == "" {
		return nil, &carrier.Error{Kind: carrier.KindAuthenticationFailed, Message: "empty access token in response"}
	}

	metrics.RecordTokenRefresh()
	c.logger.Debug().Int("expires_in", tr.ExpiresIn).Msg("Carrier token refreshed")
	return newAuthToken(tr.AccessToken, time.Duration(tr.ExpiresIn)*time.Second, time.Now()), nil
}

// post executes one authenticated JSON call. The caller wraps it in
// executeWithRetry.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &carrier.Error{Kind: carrier.KindUnknown, Message: fmt.Sprintf("encode request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return carrier.ClassifyTransport(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	call := func() error {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return carrier.ClassifyTransport(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return readAPIError(resp)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &carrier.Error{Kind: carrier.KindUnknown, Message: fmt.Sprintf("decode response: %v", err)}
		}
		return nil
	}

	if c.breaker != nil {
		return c.breaker.Execute(ctx, call)
	}
	return call()
}

// executeWithRetry runs fn through the retry state machine: token-expired
// failures trigger exactly one immediate refresh-and-retry; retryable
// failures back off exponentially with jitter; everything else surfaces
// unchanged.
func (c *Client) executeWithRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	refreshed := false
	var lastErr error

	for attempt := 0; ; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		cerr := carrier.ClassifyTransport(lastErr)

		if cerr.TokenExpired() && !refreshed {
			refreshed = true
			c.logger.Info().Str("op", op).Msg("Carrier token expired; refreshing")
			if _, err := c.tokens.Refresh(ctx); err != nil {
				return err
			}
			// Immediate retry, no delay and no attempt consumed.
			attempt--
			continue
		}

		if !cerr.Retryable() || attempt >= c.cfg.Retry.MaxRetries {
			return cerr
		}

		delay := c.cfg.Retry.Delay(attempt + 1)
		metrics.RecordCarrierRetry(op, cerr.Kind.String())
		c.logger.Warn().
			Str("op", op).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Str("kind", cerr.Kind.String()).
			Msg("Carrier request failed; retrying")

		select {
		case <-ctx.Done():
			return carrier.ClassifyTransport(ctx.Err())
		case <-time.After(delay):
		}
	}
}

// readAPIError drains the response body into a classified error, keeping
// the carrier's field-level detail for validation failures.
func readAPIError(resp *http.Response) *carrier.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload apiErrorResponse
	message := ""
	details := map[string]string{}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		message = payload.Errors[0].Message
		for _, e := range payload.Errors {
			if e.Code != "" {
				details[e.Code] = e.Message
			}
			for _, p := range e.ParameterList {
				details[p.Key] = p.Value
			}
		}
	}
	if len(details) == 0 {
		details = nil
	}
	return carrier.ClassifyStatus(resp.StatusCode, message, details)
}
