// Package fetcher performs HTTP GET requests against external JSON APIs with
// bounded retry on transient failure.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/gracechapel/site-api/pkg/logger"
)

var (
	// ErrFetchExhausted is returned after the retry ceiling is reached without a
	// successful response. It wraps the last observed failure.
	ErrFetchExhausted = errors.New("fetch attempts exhausted")

	// ErrFatalStatus is returned for client errors (4xx) that cannot succeed on
	// retry.
	ErrFatalStatus = errors.New("non-retryable response status")
)

// HTTPClient is the subset of http.Client the fetcher needs. Tests substitute
// their own implementation.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Backoff computes the delay before a retry. Delays grow exponentially from
// Base and are capped at Max.
type Backoff struct {
	Base time.Duration
	Max  time.Duration
}

// Delay returns the pause before retry attempt n (1-based: the delay taken
// after the nth failed attempt).
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= b.Max {
			return b.Max
		}
	}
	if d > b.Max {
		return b.Max
	}
	return d
}

// Fetcher retrieves JSON documents with automatic retry. It holds no state
// between calls.
type Fetcher struct {
	client         HTTPClient
	maxAttempts    int
	backoff        Backoff
	attemptTimeout time.Duration
	logger         *zap.Logger
	sleep          func(ctx context.Context, d time.Duration) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c HTTPClient) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger overrides the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// withSleep overrides the inter-attempt sleep. Test hook.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) { f.sleep = fn }
}

// New creates a Fetcher. maxAttempts is the total attempt ceiling, including
// the first try; values below 1 are raised to 1.
func New(maxAttempts int, backoff Backoff, attemptTimeout time.Duration, opts ...Option) *Fetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	f := &Fetcher{
		client:         &http.Client{},
		maxAttempts:    maxAttempts,
		backoff:        backoff,
		attemptTimeout: attemptTimeout,
		sleep:          sleepCtx,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		if logger.Log != nil {
			f.logger = logger.Log
		} else {
			f.logger = zap.NewNop()
		}
	}
	return f
}

// GetJSON fetches url and decodes the response body into v. Transient failures
// (network errors, 5xx, 408, 429) are retried with exponential backoff up to
// the attempt ceiling, then reported as ErrFetchExhausted. 4xx responses are
// fatal and returned immediately.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v interface{}) error {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		body, err := f.attempt(ctx, url)
		if err == nil {
			attemptsTotal.WithLabelValues(outcomeSuccess).Inc()
			return json.Unmarshal(body, v)
		}

		if errors.Is(err, ErrFatalStatus) || ctx.Err() != nil {
			attemptsTotal.WithLabelValues(outcomeFatal).Inc()
			return err
		}

		attemptsTotal.WithLabelValues(outcomeRetryable).Inc()
		lastErr = err

		f.logger.Warn("fetch attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", f.maxAttempts),
			zap.Error(err),
		)

		if attempt == f.maxAttempts {
			break
		}
		if err := f.sleep(ctx, f.backoff.Delay(attempt)); err != nil {
			return fmt.Errorf("cancelled during retry backoff: %w", err)
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrFetchExhausted, f.maxAttempts, lastErr)
}

// attempt performs a single GET and returns the body on a 2xx response.
func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, error) {
	if f.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.attemptTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFatalStatus, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case retryableStatus(resp.StatusCode):
		return nil, fmt.Errorf("transient status %d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrFatalStatus, resp.StatusCode)
	}
}

// retryableStatus reports whether a response status is worth retrying. 408 and
// 429 behave like transients at this provider.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusRequestTimeout || code == http.StatusTooManyRequests
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
