// internal/adapters/catalogapi/client.go
package catalogapi

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"apsny_travel/internal/adapters/observability"
	"apsny_travel/internal/domain"
)

const (
	DefaultTimeout = 10 * time.Second
	maxAttempts    = 3
	errBodyLimit   = 4096
)

// Client is the remote-mode TourSource: it reads the catalog from the REST API.
type Client struct {
	base    string
	hc      *http.Client
	key     string
	rl      *rate.Limiter
	timeout time.Duration
}

type Option func(*Client)

func WithAPIKey(key string) Option { return func(c *Client) { c.key = key } }

// WithTimeout bounds a whole call, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(base string, rps int, opts ...Option) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog API base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("catalog API base URL: %w", err)
	}
	if rps <= 0 {
		rps = 5
	}
	c := &Client{
		base:    base,
		hc:      &http.Client{},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- domain.TourSource ----

func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	var out []domain.Tour
	return out, c.get(ctx, "/tours", c.base+"/tours", &out)
}

func (c *Client) GetTourBySlug(ctx context.Context, slug string) (domain.Tour, error) {
	var out domain.Tour
	err := c.get(ctx, "/tours/{slug}", c.base+"/tours/"+url.PathEscape(slug), &out)
	return out, err
}

func (c *Client) ListReviews(ctx context.Context, tourID string) ([]domain.Review, error) {
	var out []domain.Review
	u := c.base + "/reviews?" + url.Values{"tourId": {tourID}}.Encode()
	return out, c.get(ctx, "/reviews", u, &out)
}

// ---- Internals ----

// get performs a GET with rate limiting, bounded retries on transient statuses
// and JSON decode into out. The whole call shares one deadline.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	status, err := c.do(ctx, u, out)
	observability.ObserveExternal("catalog", endpoint, status, time.Since(start))
	if err != nil {
		log.Warn().Str("endpoint", endpoint).Int("status", status).Err(err).Msg("catalog request failed")
	}
	return err
}

func (c *Client) do(ctx context.Context, u string, out any) (int, error) {
	// Wait also fails early when the next token lies past the deadline.
	if err := c.rl.Wait(ctx); err != nil {
		return 0, &domain.Error{Kind: domain.KindTimeout, Msg: "request timed out", Err: err}
	}

	var lastErr error
	var lastStatus int
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return 0, &domain.Error{Kind: domain.KindInvalidInput, Msg: "build request", Err: err}
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "apsny-travel/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctxErr(ctx, err)
			}
			lastErr = &domain.Error{Kind: domain.KindNetworkFailure, Msg: "catalog API unreachable", Err: err}
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctxErr(ctx, err)
			}
			return 0, lastErr
		}

		lastStatus = resp.StatusCode
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err := decode(resp, out)
			resp.Body.Close()
			if err != nil && ctx.Err() != nil {
				return resp.StatusCode, ctxErr(ctx, err)
			}
			return resp.StatusCode, err

		case resp.StatusCode == http.StatusNotFound:
			io.Copy(io.Discard, io.LimitReader(resp.Body, errBodyLimit))
			resp.Body.Close()
			return resp.StatusCode, &domain.Error{Kind: domain.KindNotFound, Msg: "not found", Status: resp.StatusCode}

		case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			msg := errorBody(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &domain.Error{Kind: domain.KindNetworkFailure, Msg: msg, Status: resp.StatusCode}
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return resp.StatusCode, ctxErr(ctx, lastErr)
			}
			return resp.StatusCode, lastErr

		case resp.StatusCode >= 500:
			msg := errorBody(resp)
			resp.Body.Close()
			return resp.StatusCode, &domain.Error{Kind: domain.KindNetworkFailure, Msg: msg, Status: resp.StatusCode}

		default:
			msg := errorBody(resp)
			resp.Body.Close()
			return resp.StatusCode, &domain.Error{Kind: domain.KindBadResponse, Msg: msg, Status: resp.StatusCode}
		}
	}
	return lastStatus, lastErr
}

func decode(resp *http.Response, out any) error {
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return &domain.Error{Kind: domain.KindBadResponse, Msg: "malformed response body", Status: resp.StatusCode, Err: err}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return &domain.Error{Kind: domain.KindBadResponse, Msg: "trailing data after response body", Status: resp.StatusCode, Err: err}
	}
	return nil
}

// errorBody reads a small error body for the message; failures degrade to a
// generic message built from the status.
func errorBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	if s := strings.TrimSpace(string(b)); s != "" {
		var m struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(b, &m) == nil {
			if m.Message != "" {
				return m.Message
			}
			if m.Error != "" {
				return m.Error
			}
		}
		return s
	}
	return "catalog API returned " + http.StatusText(resp.StatusCode)
}

// ctxErr maps a done context onto the taxonomy: deadline or abort is Timeout.
func ctxErr(ctx context.Context, cause error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(ctx.Err(), context.Canceled) {
		return &domain.Error{Kind: domain.KindTimeout, Msg: "request timed out", Err: cause}
	}
	return &domain.Error{Kind: domain.KindNetworkFailure, Msg: "catalog API unreachable", Err: cause}
}

// sleepCtx waits for d or returns early if ctx is done.
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

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
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

// backoff: 200ms, 400ms, ... with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
