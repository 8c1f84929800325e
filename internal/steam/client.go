// Package steam talks to the public Steam Web API and store API with two
// distinct retry policies: rate-limit responses are waited out and retried
// without bound, every other transient failure gets a fixed retry budget.
package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ppiankov/steamrisk/internal/model"
	"github.com/ppiankov/steamrisk/internal/util"
)

const (
	defaultAPIBase   = "https://api.steampowered.com"
	defaultStoreBase = "https://store.steampowered.com"

	maxTransientAttempts = 6
	transientDelay       = 2 * time.Second
	maxBackoffSeconds    = 90
)

// sleepFunc is overridden in tests to avoid real waits
var sleepFunc = time.Sleep

// jitterFunc returns the 0-1s random jitter added to computed backoff
var jitterFunc = func() time.Duration {
	return time.Duration(rand.Int63n(int64(time.Second)))
}

// Client issues requests against the Steam endpoints
type Client struct {
	httpClient *http.Client
	userAgent  string
	apiKey     string

	apiBase   string
	storeBase string

	robots   *util.RobotsChecker // nil unless robots compliance is enabled
	progress func(format string, args ...any)
}

// NewClient creates a client from the HTTP configuration. When
// respectRobots is set, every host is checked against its robots.txt
// before the first request.
func NewClient(cfg model.HTTPConfig, respectRobots bool) *Client {
	var robots *util.RobotsChecker
	if respectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
		userAgent: cfg.UserAgent,
		apiKey:    cfg.APIKey,
		apiBase:   defaultAPIBase,
		storeBase: defaultStoreBase,
		robots:    robots,
		progress: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetBaseURLs points the client at alternate endpoints (tests, mirrors)
func (c *Client) SetBaseURLs(apiBase, storeBase string) {
	if apiBase != "" {
		c.apiBase = apiBase
	}
	if storeBase != "" {
		c.storeBase = storeBase
	}
}

// SetProgress replaces the progress reporter used during backoff waits
func (c *Client) SetProgress(fn func(format string, args ...any)) {
	if fn != nil {
		c.progress = fn
	}
}

// fetchJSON fetches rawURL and decodes the response body into out.
// 429 responses are retried until they stop, honoring Retry-After when the
// server provides one; other failures consume the bounded transient budget.
func (c *Client) fetchJSON(ctx context.Context, rawURL string, out any) error {
	if c.robots != nil {
		allowed, err := c.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return fmt.Errorf("%w: %s", ErrRobotsDisallowed, rawURL)
		}
		// robots fetch failures fail open
	}

	transientAttempts := 0
	rateLimitHits := 0
	var lastErr error

	for transientAttempts < maxTransientAttempts {
		body, status, err := c.do(ctx, rawURL)

		switch {
		case err != nil:
			lastErr = err
			transientAttempts++
			sleepFunc(transientDelay)

		case status == http.StatusTooManyRequests:
			wait := retryAfter(body.header, rateLimitHits)
			rateLimitHits++
			c.progress("rate limited, waiting %s before retrying %s", wait.Round(time.Second), rawURL)
			sleepFunc(wait)

		case status >= 200 && status < 300:
			if err := json.Unmarshal(body.data, out); err != nil {
				return fmt.Errorf("decode response from %s: %w", rawURL, err)
			}
			return nil

		default:
			lastErr = fmt.Errorf("unexpected status: %d", status)
			transientAttempts++
			sleepFunc(transientDelay)
		}
	}

	return &TransientError{URL: rawURL, Attempts: transientAttempts, Err: lastErr}
}

// response couples the body with the headers needed for Retry-After
type response struct {
	data   []byte
	header http.Header
}

// do performs a single attempt
func (c *Client) do(ctx context.Context, rawURL string) (response, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return response{}, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, 0, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, 0, fmt.Errorf("read body: %w", err)
	}

	return response{data: body, header: resp.Header}, resp.StatusCode, nil
}

// retryAfter computes the 429 wait: the server-provided Retry-After when
// present and valid (a seconds count or an HTTP date, clamped to >= 0),
// otherwise exponential backoff min(90, 2^min(hits+1, 6)) plus jitter.
func retryAfter(header http.Header, rateLimitHits int) time.Duration {
	if raw := header.Get("Retry-After"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil {
			if secs < 0 {
				secs = 0
			}
			return time.Duration(secs) * time.Second
		}
		if at, err := http.ParseTime(raw); err == nil {
			if wait := time.Until(at); wait > 0 {
				return wait
			}
			return 0
		}
	}

	exp := rateLimitHits + 1
	if exp > 6 {
		exp = 6
	}
	secs := 1 << exp
	if secs > maxBackoffSeconds {
		secs = maxBackoffSeconds
	}
	return time.Duration(secs)*time.Second + jitterFunc()
}
