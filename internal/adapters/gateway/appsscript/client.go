package appsscript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/logging"
	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/bnema/container-portal-cli/internal/version"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	maxResponseBytes = 1 << 20
	requestIDHeader  = "X-Request-Id"
	jsonContentType  = "application/json;charset=utf-8"
)

type Config struct {
	Endpoint string
	// Timeout bounds a single request. Zero means no timeout beyond the caller's context.
	Timeout time.Duration
	// RateLimit is the maximum requests per second. Zero disables pacing.
	RateLimit float64
}

type Client struct {
	endpoint   *url.URL
	timeout    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
	logger     zerolog.Logger
	newID      func() string
}

var _ ports.Gateway = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.ForPackage(logger, "gateway")
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimSpace(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must use http or https, got %q", cfg.Endpoint)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	client := &Client{
		endpoint:   endpoint,
		timeout:    cfg.Timeout,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     zerolog.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func (c *Client) Request(ctx context.Context, action domain.Action, params map[string]string) (json.RawMessage, error) {
	requestID := c.newID()
	started := time.Now()

	payload, err := c.do(ctx, action, params, requestID)
	elapsed := time.Since(started)
	c.metrics.observe(action, outcomeOf(err), elapsed)

	event := c.logger.Debug()
	if err != nil {
		event = c.logger.Warn().Err(err)
	}
	event.
		Str(logging.ActionField, string(action)).
		Str(logging.RequestIDField, requestID).
		Dur("elapsed", elapsed).
		Msg("portal request")

	return payload, err
}

func (c *Client) do(ctx context.Context, action domain.Action, params map[string]string, requestID string) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Action: action, Err: fmt.Errorf("wait for request slot: %w", err)}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	request, err := c.newRequest(ctx, action, params)
	if err != nil {
		return nil, &domain.NetworkError{Action: action, Err: err}
	}
	request.Header.Set("User-Agent", "portal/"+version.Version)
	request.Header.Set(requestIDHeader, requestID)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &domain.NetworkError{Action: action, Err: fmt.Errorf("perform request: %w", err)}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.NetworkError{Action: action, Err: fmt.Errorf("read response: %w", err)}
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		var bodyErr error
		if text := strings.TrimSpace(string(body)); text != "" {
			bodyErr = errors.New(text)
		}
		return nil, &domain.NetworkError{Action: action, StatusCode: response.StatusCode, Err: bodyErr}
	}

	return decodeEnvelope(action, body)
}

func (c *Client) newRequest(ctx context.Context, action domain.Action, params map[string]string) (*http.Request, error) {
	if action.IsRead() {
		target := *c.endpoint
		query := target.Query()
		query.Set("action", string(action))
		for key, value := range params {
			query.Set(key, value)
		}
		target.RawQuery = query.Encode()

		request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		return request, nil
	}

	body := make(map[string]string, len(params)+1)
	for key, value := range params {
		body[key] = value
	}
	body["action"] = string(action)

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", jsonContentType)

	return request, nil
}

// decodeEnvelope checks that body is a JSON object and turns a truthy error field into an APIError.
func decodeEnvelope(action domain.Action, body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return nil, &domain.NetworkError{Action: action, Err: fmt.Errorf("%w: expected a JSON object", domain.ErrMalformedResponse)}
	}

	if message, failed := errorMessage(envelope["error"]); failed {
		return nil, &domain.APIError{Action: action, Message: message}
	}

	return json.RawMessage(body), nil
}

func errorMessage(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	switch string(trimmed) {
	case "null", "false", `""`, "0":
		return "", false
	}

	var message string
	if err := json.Unmarshal(trimmed, &message); err == nil {
		if message = strings.TrimSpace(message); message == "" {
			message = "unspecified error"
		}
		return message, true
	}

	return string(trimmed), true
}
