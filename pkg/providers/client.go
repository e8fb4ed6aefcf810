package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"
)

// maxErrorBodyBytes caps how much of an upstream error body is carried in a
// ProviderError message.
const maxErrorBodyBytes = 512

// Client is the shared HTTP transport for provider adapters. It owns a pooled
// http.Client bounded by the provider timeout and classifies transport
// failures into the typed errors of this package.
//
// Client never retries: one call, one outcome.
type Client struct {
	provider string
	timeout  time.Duration
	http     *http.Client
}

// NewClient creates a transport for the named provider.
func NewClient(provider string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &Client{
		provider: provider,
		timeout:  timeout,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// PostJSON marshals payload, POSTs it to rawURL with the given headers, and
// returns the response body on 2xx. Non-2xx responses become a ProviderError
// with a truncated body; transport failures become NetworkError or
// TimeoutError depending on the underlying cause.
func (c *Client) PostJSON(ctx context.Context, rawURL string, payload any, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	slog.Debug("sending request to provider",
		"provider", c.provider,
		"url", rawURL,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classify(err, rawURL)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{
			Provider: c.provider,
			Kind:     NetworkOther,
			Host:     hostOf(rawURL),
			Cause:    err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), maxErrorBodyBytes),
		}
	}

	return respBody, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// classify maps a transport error onto the typed error taxonomy by inspecting
// the underlying net error, not its rendered message.
func (c *Client) classify(err error, rawURL string) error {
	host := hostOf(rawURL)

	// Timeouts first: both the client deadline and a context deadline render
	// as url.Error with Timeout() true.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TimeoutError{Provider: c.provider, Timeout: c.timeout}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: c.provider, Timeout: c.timeout}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.Name != "" {
			host = dnsErr.Name
		}
		return &NetworkError{Provider: c.provider, Kind: NetworkDNS, Host: host, Cause: err}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &NetworkError{Provider: c.provider, Kind: NetworkConnRefused, Host: host, Cause: err}
	}

	return &NetworkError{Provider: c.provider, Kind: NetworkOther, Host: host, Cause: err}
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
