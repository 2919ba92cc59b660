// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cashapp/certifikit/src/internal/helper/gc"
	"github.com/cashapp/certifikit/src/logger"
)

// ErrHTTPStatus is returned when a server answers with a status other than 200.
var ErrHTTPStatus = errors.New("x509chain: unexpected HTTP status")

// HTTPConfig holds HTTP client configuration for certificate operations
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with a 10 second timeout
// and the provided application version.
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout: 10 * time.Second,
		Version: version,
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("certifikit/%s (+https://github.com/cashapp/certifikit)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// Fetcher performs the HTTP requests needed to complete and check a chain.
type Fetcher interface {
	// Fetch downloads url and returns the response body.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// Post sends body to url and returns the response body.
	Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error)
	// Head returns the status code of a HEAD request to url.
	Head(ctx context.Context, url string) (int, error)
}

// HTTPFetcher is a [Fetcher] over net/http. GET responses are kept in an
// optional [Cache] keyed by URL.
type HTTPFetcher struct {
	Config *HTTPConfig
	Cache  *Cache // nil disables caching
	Logger logger.Logger
}

// NewHTTPFetcher creates an HTTPFetcher. A nil log discards debug output.
func NewHTTPFetcher(cfg *HTTPConfig, cache *Cache, log logger.Logger) *HTTPFetcher {
	if log == nil {
		log = logger.NewMCPLogger(nil, true)
	}
	return &HTTPFetcher{Config: cfg, Cache: cache, Logger: log}
}

// Fetch implements [Fetcher].
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if data, ok := f.Cache.Get(url); ok {
			f.Logger.Debugf("cache hit for %s", url)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	f.Logger.Debugf("fetching %s", url)
	data, err := f.do(req)
	if err != nil {
		return nil, err
	}

	if f.Cache != nil {
		f.Cache.Set(url, data)
	}
	return data, nil
}

// Post implements [Fetcher].
func (f *HTTPFetcher) Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	f.Logger.Debugf("posting %d bytes to %s", len(body), url)
	return f.do(req)
}

// Head implements [Fetcher].
func (f *HTTPFetcher) Head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", f.Config.GetUserAgent())

	f.Logger.Debugf("probing %s", url)
	resp, err := f.Config.Client().Do(req)
	if err != nil {
		return 0, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return resp.StatusCode, nil
}

func (f *HTTPFetcher) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", f.Config.GetUserAgent())

	resp, err := f.Config.Client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrHTTPStatus, req.Method, req.URL, resp.StatusCode)
	}

	data, err := gc.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return data, nil
}
