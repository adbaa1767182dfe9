package source

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"arica_go/internal/adapters/observability"
	"arica_go/internal/domain"
)

const maxDocumentBytes = 8 << 20

// HTTP fetches the catalog document from a URL with client-side rate limiting,
// retries on 429/5xx, and conditional requests against the last ETag seen.
type HTTP struct {
	url     string
	hc      *http.Client
	rl      *rate.Limiter
	retries int

	mu   sync.Mutex
	etag string
	last []byte
}

func NewHTTP(url string, rps, retries int) (*HTTP, error) {
	if url == "" {
		return nil, fmt.Errorf("catalog URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if retries < 0 {
		retries = 0
	}
	return &HTTP{
		url:     url,
		hc:      &http.Client{Timeout: 20 * time.Second},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		retries: retries,
	}, nil
}

func (c *HTTP) Name() string { return "http" }

func (c *HTTP) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	return Decode(body)
}

var ErrUnexpectedStatus = errors.New("unexpected status")

// fetch performs the GET, retrying transient failures and honoring Retry-After.
func (c *HTTP) fetch(ctx context.Context) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i <= c.retries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "aricago/1.0")
		c.mu.Lock()
		if c.etag != "" && c.last != nil {
			req.Header.Set("If-None-Match", c.etag)
		}
		c.mu.Unlock()

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("catalog", 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if i < c.retries && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr
		}
		observability.ObserveExternal("catalog", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read catalog body: %w", err)
			}
			c.mu.Lock()
			c.etag, c.last = resp.Header.Get("ETag"), b
			c.mu.Unlock()
			return b, nil

		case http.StatusNotModified:
			resp.Body.Close()
			c.mu.Lock()
			b := c.last
			c.mu.Unlock()
			return b, nil

		case http.StatusNotFound:
			resp.Body.Close()
			return nil, fmt.Errorf("catalog %s: %w", c.url, domain.ErrNotFound)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
			if i < c.retries && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, lastErr
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
