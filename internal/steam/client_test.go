package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/steamrisk/internal/model"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(model.HTTPConfig{
		Timeout:   5 * time.Second,
		UserAgent: "steamrisk-test/1.0",
		APIKey:    "test-key",
	}, false)
	c.SetProgress(func(format string, args ...any) {})
	return c
}

// stubSleep replaces sleepFunc for the test and records every wait
func stubSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleepFunc
	sleepFunc = func(d time.Duration) { waits = append(waits, d) }
	t.Cleanup(func() { sleepFunc = orig })
	return &waits
}

func stubJitter(t *testing.T, d time.Duration) {
	t.Helper()
	orig := jitterFunc
	jitterFunc = func() time.Duration { return d }
	t.Cleanup(func() { jitterFunc = orig })
}

func TestFetchJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "steamrisk-test/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`{"value": 42}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	var out struct {
		Value int `json:"value"`
	}
	err := c.fetchJSON(context.Background(), srv.URL, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
}

func TestFetchJSON_TransientThenSuccess(t *testing.T) {
	waits := stubSleep(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.fetchJSON(context.Background(), srv.URL, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 3, calls)
	assert.Len(t, *waits, 2)
}

func TestFetchJSON_TransientBudgetExhausted(t *testing.T) {
	stubSleep(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(t)
	var out map[string]any
	err := c.fetchJSON(context.Background(), srv.URL, &out)

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, maxTransientAttempts, te.Attempts)
	assert.Contains(t, te.Error(), "502")
}

func TestFetchJSON_RateLimitHonorsRetryAfter(t *testing.T) {
	waits := stubSleep(t)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	var out map[string]any
	err := c.fetchJSON(context.Background(), srv.URL, &out)

	require.NoError(t, err)
	require.Len(t, *waits, 1)
	assert.Equal(t, 5*time.Second, (*waits)[0])
}

// Rate-limit responses must not consume the transient budget: more 429s
// than the budget allows still end in a successful fetch.
func TestFetchJSON_RateLimitDoesNotConsumeBudget(t *testing.T) {
	stubSleep(t)
	stubJitter(t, 0)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= maxTransientAttempts+2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t)
	var out map[string]any
	err := c.fetchJSON(context.Background(), srv.URL, &out)

	require.NoError(t, err)
	assert.Equal(t, maxTransientAttempts+3, calls)
}

func TestRetryAfter_SecondsHeader(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "30")
	assert.Equal(t, 30*time.Second, retryAfter(h, 0))
}

func TestRetryAfter_NegativeSecondsClamped(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "-10")
	assert.Equal(t, time.Duration(0), retryAfter(h, 0))
}

func TestRetryAfter_HTTPDateHeader(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", time.Now().Add(10*time.Second).UTC().Format(http.TimeFormat))

	wait := retryAfter(h, 0)
	assert.Greater(t, wait, 5*time.Second)
	assert.LessOrEqual(t, wait, 10*time.Second)
}

func TestRetryAfter_PastHTTPDateIsZero(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat))
	assert.Equal(t, time.Duration(0), retryAfter(h, 0))
}

func TestRetryAfter_BackoffGrowsAndCaps(t *testing.T) {
	stubJitter(t, 0)

	assert.Equal(t, 2*time.Second, retryAfter(http.Header{}, 0))
	assert.Equal(t, 4*time.Second, retryAfter(http.Header{}, 1))
	assert.Equal(t, 8*time.Second, retryAfter(http.Header{}, 2))
	assert.Equal(t, 64*time.Second, retryAfter(http.Header{}, 5))
	// exponent is clamped, so further hits stay at the ceiling
	assert.Equal(t, 64*time.Second, retryAfter(http.Header{}, 10))
}

func TestRetryAfter_MalformedHeaderFallsBackToBackoff(t *testing.T) {
	stubJitter(t, 0)

	h := http.Header{}
	h.Set("Retry-After", "soon")
	assert.Equal(t, 2*time.Second, retryAfter(h, 0))
}

func TestFetchJSON_RequestError(t *testing.T) {
	stubSleep(t)

	c := newTestClient(t)
	var out map[string]any
	err := c.fetchJSON(context.Background(), "http://127.0.0.1:1/unreachable", &out)

	var te *TransientError
	require.ErrorAs(t, err, &te)
	assert.Error(t, te.Err)
}
