package superfaktura

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://moja.superfaktura.sk"

// DefaultTimeout bounds a single request unless overridden.
const DefaultTimeout = 15 * time.Second

// previewLimit caps how much of an unparsable response body ends up in an
// error message.
const previewLimit = 200

// Config carries everything the client needs. It is supplied by the
// composition root; the client never reads ambient state.
type Config struct {
	BaseURL   string
	Email     string
	APIKey    string
	CompanyID int
	Timeout   time.Duration
}

// Client is a SuperFaktura API client. The auth header is computed once at
// construction; the client holds no other mutable state, so concurrent calls
// are safe and each one is a single suspend-until-response request.
type Client struct {
	baseURL    string
	authHeader string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger

	Contacts *ContactsService
	Invoices *InvoicesService
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new SuperFaktura client.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.Email == "" {
		return nil, fmt.Errorf("superfaktura: API email is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("superfaktura: API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Strip trailing slashes once so path concatenation never double-slashes.
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		baseURL:    baseURL,
		authHeader: BuildAuthHeader(cfg.Email, cfg.APIKey, cfg.CompanyID),
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.Contacts = &ContactsService{client: client}
	client.Invoices = &InvoicesService{client: client}

	return client, nil
}

// response is a decoded JSON API response.
type response struct {
	StatusCode int
	Body       []byte
	Record     map[string]any
}

// decode unmarshals the response body into out. The transport has already
// established that the body is valid JSON.
func (r *response) decode(out any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("superfaktura: decode response: %w", err)
	}
	return nil
}

// do executes one JSON request and classifies the response. Order matters:
// 404 wins over everything, then HTTP status, then the in-body error code.
// Success requires both a 2xx status and an absent or zero in-body error.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	fullURL := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("superfaktura: marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	// Each call gets its own deadline; cancelling it tears down only this
	// request.
	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("superfaktura: create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, fullURL, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, fullURL, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("API request completed")

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	record, parsed := decodeRecord(text)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if !parsed {
			record = map[string]any{"message": string(text)}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: record}
	}

	if !parsed {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body: map[string]any{
				"message": fmt.Sprintf("response is not valid JSON (status %d): %s", resp.StatusCode, preview(text)),
			},
		}
	}

	if code, ok := record["error"].(float64); ok && code > 0 {
		details := normalizeErrorMessages(record["error_message"])
		if len(details) > 0 {
			return nil, &ValidationError{
				APIError: APIError{StatusCode: resp.StatusCode, Body: record},
				Details:  details,
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: record}
	}

	return &response{StatusCode: resp.StatusCode, Body: text, Record: record}, nil
}

// doBinary executes one request for opaque bytes. Only HTTP-status
// classification applies; the body is never inspected for error codes.
func (c *Client) doBinary(ctx context.Context, method, path string) (*BinaryResult, error) {
	fullURL := c.baseURL + path

	tctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("superfaktura: create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, fullURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, fullURL, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       map[string]any{"message": string(data)},
		}
	}

	return &BinaryResult{
		StatusCode:  resp.StatusCode,
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// transportError distinguishes this call's own deadline from every other
// network failure, including a cancellation the caller requested.
func (c *Client) transportError(ctx context.Context, url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return &TimeoutError{URL: url, Timeout: c.timeout}
	}
	return fmt.Errorf("superfaktura: request failed: %w", err)
}

// decodeRecord decodes a response body into a generic record. An empty body
// decodes to an empty record, as does valid JSON that is not an object. The
// second return value reports whether the body was parseable at all.
func decodeRecord(text []byte) (map[string]any, bool) {
	if len(text) == 0 {
		return map[string]any{}, true
	}
	var value any
	if err := json.Unmarshal(text, &value); err != nil {
		return nil, false
	}
	record, ok := value.(map[string]any)
	if !ok || record == nil {
		record = map[string]any{}
	}
	return record, true
}

// preview truncates a raw body for inclusion in an error message.
func preview(text []byte) string {
	if len(text) > previewLimit {
		return string(text[:previewLimit])
	}
	return string(text)
}

// normalizeErrorMessages flattens the API's error_message field, which may
// be a string or an array of strings.
func normalizeErrorMessages(value any) []string {
	switch v := value.(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		var messages []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				messages = append(messages, s)
			}
		}
		return messages
	}
	return nil
}
