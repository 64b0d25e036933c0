// Package geoip implements the upstream geolocation provider against the
// ipinfo.io HTTP API.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geotrace/geolocation-api/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a Client for the given base URL (e.g. https://ipinfo.io).
// token may be empty for anonymous, rate-limited access.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup resolves geolocation for ip via GET <base>/<ip>/geo, or GET
// <base>/geo for the caller's own address when ip is empty.
func (c *Client) Lookup(ctx context.Context, ip string) (*domain.Geolocation, error) {
	endpoint := c.baseURL + "/geo"
	if ip != "" {
		endpoint = c.baseURL + "/" + url.PathEscape(ip) + "/geo"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geoip request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup %q: %w", ip, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("geoip lookup %q: unexpected status %d", ip, resp.StatusCode)
	}

	var geo domain.Geolocation
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, fmt.Errorf("geoip lookup %q: decode: %w", ip, err)
	}
	return &geo, nil
}
