package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"buntab/pkg/cache"
	"buntab/pkg/config"
)

const httpTimeout = 10 * time.Second

// Client queries the npm registry and search API over HTTP. It replaces the
// shell-out-to-curl approach of completion scripts with a real HTTP client
// while preserving the same request shape (headers, URLs, query encoding).
//
// Responses are cached through the injected cache.Cache; retries use
// exponential backoff for transient failures. A Client is safe for
// concurrent use, so overlapping keystroke lookups never interfere.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	registry string
	search   string
}

// NewClient creates a Client from an explicit Config and a response cache.
// Pass cache.NewNullCache() to disable caching.
func NewClient(cfg config.Config, c cache.Cache) *Client {
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    c,
		ttl:      cfg.CacheTTL.Duration,
		registry: cfg.Registry,
		search:   cfg.Search,
	}
}

// getJSON fetches a URL and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	raw, err := c.getRaw(ctx, url, headers)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// getRaw fetches a URL and returns the response body, consulting the cache
// first. Transient failures (network errors, 5xx) are retried with backoff.
func (c *Client) getRaw(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	key := "npm:" + url
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		return data, nil
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		body, ferr = c.doRequest(ctx, url, headers)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
