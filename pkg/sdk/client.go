package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gen "github.com/kailas-cloud/pagehighlight/internal/transport/api"
)

// Client talks to a pagehighlight server.
type Client struct {
	baseURL string
	http    *http.Client
	apiKey  string
	scope   Scope
	obs     *observer
}

// New creates a Client for the server at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("pagehighlight: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("pagehighlight: base url %q must be http(s)://host", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    hc,
		apiKey:  cfg.apiKey,
		scope:   cfg.scope,
		obs:     obs,
	}, nil
}

// send performs a request and returns the status code and the full body.
func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	return resp.StatusCode, data, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.send(ctx, method, path, "application/json", body)
}

// decodeOutcome reads a search response. Not found and invalid input are
// outcomes; bodies without a status are errors.
func decodeOutcome(status int, data []byte) (Result, error) {
	switch status {
	case http.StatusOK, http.StatusNotFound, http.StatusBadRequest:
		var resp gen.MatchResponse
		if err := json.Unmarshal(data, &resp); err == nil && resp.Status != "" {
			return Result{
				Status:  Status(resp.Status),
				Matches: fromMatchItems(resp.Items),
				Message: resp.Message,
			}, nil
		}
	}
	return Result{}, apiError(status, data)
}

func decodeJSON(status int, data []byte, out any) error {
	if status < 200 || status > 299 {
		return apiError(status, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(status int, data []byte) error {
	var resp gen.ErrorResponse
	if err := json.Unmarshal(data, &resp); err != nil || resp.Code == "" {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(string(data))}
	}
	return &APIError{StatusCode: status, Code: string(resp.Code), Message: resp.Message}
}

func (c *Client) scopeParam(s Scope) *string {
	if s == "" {
		s = c.scope
	}
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func uploadPath(id string) string {
	return "/uploads/" + url.PathEscape(id)
}
