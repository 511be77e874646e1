package bookingapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"apsny_travel/internal/adapters/bookingapi"
	"apsny_travel/internal/domain"
)

func payload() domain.BookingPayload {
	return domain.BookingPayload{
		TourTitle:     "Озеро Рица",
		ClientName:    "Иван",
		ClientContact: "+79990000000",
		Pax:           2,
		Consent:       true,
	}
}

func TestHTTPSender_PostsJSON(t *testing.T) {
	var got domain.BookingPayload
	var ct, reqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		reqID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"b-1"}`))
	}))
	defer ts.Close()

	s, err := bookingapi.NewHTTPSender(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	res, err := s.Send(context.Background(), payload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.OK || res.Mocked || res.RequestID != reqID || string(res.Response) != `{"id":"b-1"}` {
		t.Fatalf("unexpected result: %+v", res)
	}
	if ct != "application/json" || got.ClientContact != "+79990000000" || got.Pax != 2 {
		t.Fatalf("unexpected request: ct=%q body=%+v", ct, got)
	}
}

func TestHTTPSender_ServerErrorIsSubmissionFailed(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"CRM unavailable"}`))
	}))
	defer ts.Close()

	s, _ := bookingapi.NewHTTPSender(ts.URL, time.Second)
	_, err := s.Send(context.Background(), payload())

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %v", err)
	}
	if de.Kind != domain.KindSubmissionFailed || de.Status != 500 || de.Msg != "CRM unavailable" {
		t.Fatalf("unexpected error: %+v", de)
	}
	if hits != 1 {
		t.Fatalf("submission must not be retried, hits=%d", hits)
	}
}

func TestHTTPSender_EmptyErrorBodyFallsBack(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	s, _ := bookingapi.NewHTTPSender(ts.URL, time.Second)
	_, err := s.Send(context.Background(), payload())
	var de *domain.Error
	if !errors.As(err, &de) || de.Status != 502 {
		t.Fatalf("unexpected error: %v", err)
	}
	if de.Msg != "Не удалось отправить заявку. Попробуйте позже." {
		t.Fatalf("want the default Russian message, got %q", de.Msg)
	}
}

func TestHTTPSender_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	s, _ := bookingapi.NewHTTPSender(url, time.Second)
	_, err := s.Send(context.Background(), payload())
	if !errors.Is(err, domain.ErrSubmissionFailed) {
		t.Fatalf("expected submission failed, got %v", err)
	}
}

func TestDemoSender_Mocked(t *testing.T) {
	s := bookingapi.NewDemoSender(10 * time.Millisecond)
	start := time.Now()
	res, err := s.Send(context.Background(), payload())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.OK || !res.Mocked {
		t.Fatalf("expected mocked success, got %+v", res)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("demo sender returned before its delay")
	}
}
