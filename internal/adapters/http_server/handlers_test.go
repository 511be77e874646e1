package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"apsny_travel/internal/adapters/bookingapi"
	"apsny_travel/internal/adapters/fixtures"
	server "apsny_travel/internal/adapters/http_server"
	"apsny_travel/internal/app"
	"apsny_travel/internal/domain"
)

type failingSender struct{}

func (failingSender) Send(ctx context.Context, p domain.BookingPayload) (domain.SubmissionResult, error) {
	return domain.SubmissionResult{}, &domain.Error{Kind: domain.KindSubmissionFailed, Msg: "CRM unavailable", Status: 500}
}

func newAPI(t *testing.T, sender domain.BookingSender) *httptest.Server {
	t.Helper()
	return newAPIWith(t, fixtures.New(fixtures.WithLatency(0, 0)), sender, 5*time.Second)
}

func newAPIWith(t *testing.T, src domain.TourSource, sender domain.BookingSender, timeout time.Duration) *httptest.Server {
	t.Helper()
	catalog := app.NewCatalogService(src, nil, 0)
	booking := app.NewBookingService(app.NewBookingValidator(time.UTC, nil), sender)

	srv := server.New(zerolog.Nop(), timeout)
	srv.MountHandlers(&server.Handlers{Catalog: catalog, Booking: booking, Locale: app.LocaleRU})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func futureDate() string { return time.Now().UTC().AddDate(0, 0, 2).Format(time.DateOnly) }

func TestGetTour_OKAndETag(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	res, err := http.Get(ts.URL + "/v1/tours/lake-ritsa")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var tr domain.Tour
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tr.PriceFrom != 4500 {
		t.Fatalf("unexpected tour: %+v", tr)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/tours/lake-ritsa", nil)
	req.Header.Set("If-None-Match", res.Header.Get("ETag"))
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestGetTour_InactiveIs404Problem(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	res, err := http.Get(ts.URL + "/v1/tours/new-athos-caves")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var p struct {
		Status int    `json:"status"`
		Kind   string `json:"kind"`
	}
	_ = json.NewDecoder(res.Body).Decode(&p)
	if res.StatusCode != http.StatusNotFound || p.Kind != string(domain.KindNotFound) {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, p)
	}
}

func TestRequestTimeout_IsProblem504(t *testing.T) {
	slow := fixtures.New(fixtures.WithLatency(time.Second, time.Second))
	ts := newAPIWith(t, slow, bookingapi.NewDemoSender(0), 50*time.Millisecond)

	res, err := http.Get(ts.URL + "/v1/tours")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
		t.Fatalf("content type %q", ct)
	}
	var p struct {
		Status int    `json:"status"`
		Kind   string `json:"kind"`
	}
	_ = json.NewDecoder(res.Body).Decode(&p)
	if res.StatusCode != http.StatusGatewayTimeout || p.Status != 504 || p.Kind != string(domain.KindTimeout) {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, p)
	}
}

func TestListTours_Filter(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	res, err := http.Get(ts.URL + "/v1/tours?region=abkhazia")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	var tours []domain.Tour
	_ = json.NewDecoder(res.Body).Decode(&tours)
	if len(tours) != 2 {
		t.Fatalf("expected 2 active abkhazia tours, got %d", len(tours))
	}

	bad, _ := http.Get(ts.URL + "/v1/tours?type=cruise")
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", bad.StatusCode)
	}
}

func TestListReviews(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	res, err := http.Get(ts.URL + "/v1/reviews?tourId=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(res.Body)
	if res.StatusCode != http.StatusOK || strings.TrimSpace(body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %s", res.StatusCode, body)
	}

	missing, _ := http.Get(ts.URL + "/v1/reviews")
	missing.Body.Close()
	if missing.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without tourId, got %d", missing.StatusCode)
	}
}

func postBooking(t *testing.T, url string, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	b, _ := json.Marshal(body)
	res, err := http.Post(url+"/v1/bookings", "application/json", strings.NewReader(string(b)))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res, out
}

func booking() map[string]any {
	return map[string]any{
		"tourTitle":      "Озеро Рица",
		"client_name":    "Иван",
		"client_contact": "+79990000000",
		"desired_date":   futureDate(),
		"pax":            2,
		"consent":        true,
	}
}

func TestSubmitBooking_Demo(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	res, out := postBooking(t, ts.URL, booking())
	if res.StatusCode != http.StatusCreated || out["mocked"] != true || out["ok"] != true {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, out)
	}
}

func TestSubmitBooking_ValidationErrors(t *testing.T) {
	ts := newAPI(t, bookingapi.NewDemoSender(0))

	b := booking()
	b["pax"] = 21
	res, out := postBooking(t, ts.URL, b)
	if res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.StatusCode)
	}
	errs, _ := out["errors"].(map[string]any)
	if errs["pax"] != "Максимум 20 человек" {
		t.Fatalf("unexpected errors: %+v", out)
	}
}

func TestSubmitBooking_UpstreamFailure(t *testing.T) {
	ts := newAPI(t, failingSender{})

	res, out := postBooking(t, ts.URL, booking())
	if res.StatusCode != http.StatusBadGateway || out["kind"] != string(domain.KindSubmissionFailed) {
		t.Fatalf("unexpected response: %d %+v", res.StatusCode, out)
	}
}
