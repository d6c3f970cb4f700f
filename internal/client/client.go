package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalogadmin/internal/logging"
	"catalogadmin/internal/types"
)

const defaultBaseURL = "http://127.0.0.1:7780"

// Client talks JSON to the catalog backend. Every call performs a network
// request; failures come back as *RequestError.
type Client struct {
	baseURL string
	perPage int
	http    *http.Client
	logger  logging.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout < 0 {
			timeout = 0
		}
		c.http = &http.Client{Timeout: timeout, Transport: c.http.Transport}
	}
}

// WithPerPage adds per_page to list requests that do not carry one.
func WithPerPage(perPage int) Option {
	return func(c *Client) {
		if perPage > 0 {
			c.perPage = perPage
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchList requests one page of endpoint and decodes the data array into out.
// Keys with empty values are dropped from the query.
func (c *Client) FetchList(ctx context.Context, endpoint string, page int, query url.Values, out any) (types.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	for key, values := range query {
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			params.Add(key, value)
		}
	}
	params.Set("page", strconv.Itoa(page))
	if c.perPage > 0 && params.Get("per_page") == "" {
		params.Set("per_page", strconv.Itoa(c.perPage))
	}

	var envelope listEnvelope
	if err := c.doJSON(ctx, http.MethodGet, endpoint, params, nil, &envelope); err != nil {
		return types.PageMeta{}, err
	}
	if len(envelope.Data) > 0 && out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return types.PageMeta{}, fmt.Errorf("decode %s page %d: %w", endpoint, page, err)
		}
	}
	meta := types.PageMeta{CurrentPage: page, TotalPages: 1}
	if envelope.Meta != nil {
		meta = *envelope.Meta
	}
	return meta.Normalize(), nil
}

// FetchOne decodes a single entity, bare or wrapped in {"data": ...}.
func (c *Client) FetchOne(ctx context.Context, endpoint string, out any) error {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, &raw); err != nil {
		return err
	}
	return decodeEntity(raw, out)
}

// Create posts {key: payload} to endpoint.
func (c *Client) Create(ctx context.Context, endpoint, key string, payload, out any) error {
	return c.mutate(ctx, http.MethodPost, endpoint, key, payload, out)
}

// Update puts {key: payload} to endpoint.
func (c *Client) Update(ctx context.Context, endpoint, key string, payload, out any) error {
	return c.mutate(ctx, http.MethodPut, endpoint, key, payload, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

func (c *Client) mutate(ctx context.Context, method, endpoint, key string, payload, out any) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("payload key is required")
	}
	if payload == nil {
		return fmt.Errorf("%s is required", key)
	}
	var raw json.RawMessage
	if err := c.doJSON(ctx, method, endpoint, nil, map[string]any{key: payload}, &raw); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return decodeEntity(raw, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", logging.F("method", method), logging.F("path", path), logging.Err(err))
		return networkError(0, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	c.logger.Debug("request",
		logging.F("method", method),
		logging.F("path", path),
		logging.F("status", resp.StatusCode),
		logging.F("duration", time.Since(started)),
	)
	if err != nil {
		return networkError(resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStatusError(resp.StatusCode, payload)
	}
	if appErr := decodeFailureEnvelope(resp.StatusCode, payload); appErr != nil {
		return appErr
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeEntity(raw json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &wrapped); err == nil {
			data := bytes.TrimSpace(wrapped.Data)
			if len(data) > 0 && data[0] == '{' {
				raw = data
			}
		}
	}
	return json.Unmarshal(raw, out)
}
