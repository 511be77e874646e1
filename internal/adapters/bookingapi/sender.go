// Package bookingapi delivers validated booking inquiries: either to the
// configured endpoint over HTTP or, with no endpoint, through a demo path that
// only simulates acceptance.
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"apsny_travel/internal/adapters/observability"
	"apsny_travel/internal/domain"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultDemoDelay = 1200 * time.Millisecond

	fallbackMessage = "Не удалось отправить заявку. Попробуйте позже."
	bodyLimit       = 64 << 10
)

// HTTPSender POSTs the payload as JSON. It never retries; a retry is a new
// submission initiated by the visitor.
type HTTPSender struct {
	endpoint string
	hc       *http.Client
	timeout  time.Duration
}

func NewHTTPSender(endpoint string, timeout time.Duration) (*HTTPSender, error) {
	endpoint = strings.TrimSpace(endpoint)
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("booking endpoint: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSender{endpoint: endpoint, hc: &http.Client{}, timeout: timeout}, nil
}

func (s *HTTPSender) Send(ctx context.Context, p domain.BookingPayload) (domain.SubmissionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(p)
	if err != nil {
		return domain.SubmissionResult{}, &domain.Error{Kind: domain.KindSubmissionFailed, Msg: "encode booking payload", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SubmissionResult{}, &domain.Error{Kind: domain.KindSubmissionFailed, Msg: "build booking request", Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := s.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("booking", "submit", 0, time.Since(start))
		msg := "booking endpoint unreachable"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = "booking request timed out"
		}
		return domain.SubmissionResult{}, &domain.Error{Kind: domain.KindSubmissionFailed, Msg: msg, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("booking", "submit", resp.StatusCode, time.Since(start))

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.SubmissionResult{}, &domain.Error{
			Kind:   domain.KindSubmissionFailed,
			Msg:    serverMessage(raw),
			Status: resp.StatusCode,
		}
	}

	res := domain.SubmissionResult{OK: true, RequestID: reqID}
	// Acknowledgment body is optional; keep it only when it is JSON.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		res.Response = json.RawMessage(trimmed)
	}
	log.Info().Str("request_id", reqID).Int("status", resp.StatusCode).Bool("mocked", false).Msg("booking accepted")
	return res, nil
}

// serverMessage extracts a human message from an error body. Unparseable
// bodies degrade to their text, empty ones to a generic message.
func serverMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fallbackMessage
	}
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(trimmed, &m) == nil {
		if m.Message != "" {
			return m.Message
		}
		if m.Error != "" {
			return m.Error
		}
	}
	return string(trimmed)
}

// DemoSender accepts every payload after a delay without contacting anyone.
type DemoSender struct {
	delay time.Duration
}

func NewDemoSender(delay time.Duration) *DemoSender {
	if delay < 0 {
		delay = 0
	}
	return &DemoSender{delay: delay}
}

func (s *DemoSender) Send(ctx context.Context, p domain.BookingPayload) (domain.SubmissionResult, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.SubmissionResult{}, &domain.Error{Kind: domain.KindSubmissionFailed, Msg: "booking request cancelled", Err: ctx.Err()}
		case <-t.C:
		}
	}
	reqID := uuid.NewString()
	log.Warn().Str("request_id", reqID).Str("tour", p.TourTitle).Bool("mocked", true).
		Msg("booking endpoint not configured; inquiry accepted in demo mode and not delivered")
	return domain.SubmissionResult{OK: true, Mocked: true, RequestID: reqID}, nil
}
