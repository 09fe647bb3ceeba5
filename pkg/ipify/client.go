package ipify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://geo.ipify.org"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4096
)

// NewClient instantiates a geo.ipify.org API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ipify: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// Lookup resolves an IP address or domain (or, with empty params, the
// caller's own address) to its approximate location.
func (c *Client) Lookup(ctx context.Context, params Params) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("ipify: client is nil")
	}

	u, err := c.buildLookupURL(params)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("ipify: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("ipify: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Result{}, fmt.Errorf("ipify: API error (%d): %s", resp.StatusCode, errorMessage(body))
	}

	var payload Result
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("ipify: decode response: %w", err)
	}
	if payload.IP == "" {
		return Result{}, fmt.Errorf("ipify: decode response: missing ip")
	}

	return payload, nil
}

func (c *Client) buildLookupURL(params Params) (string, error) {
	if params.IPAddress != "" && params.Domain != "" {
		return "", fmt.Errorf("ipify: ip address and domain are mutually exclusive")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("ipify: parse base url: %w", err)
	}

	// the product segment is literally "country,city"
	u.Path = path.Join(u.Path, "api", "v2", "country,city")

	values := url.Values{}
	values.Set("apiKey", c.apiKey)

	switch {
	case params.IPAddress != "":
		values.Set("ipAddress", params.IPAddress)
	case params.Domain != "":
		values.Set("domain", params.Domain)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func errorMessage(body []byte) string {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Messages != "" {
		return apiErr.Messages
	}
	return strings.TrimSpace(string(body))
}
