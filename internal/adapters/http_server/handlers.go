// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"apsny_travel/internal/app"
	"apsny_travel/internal/domain"
)

type Handlers struct {
	Catalog *app.CatalogService
	Booking *app.BookingService
	Locale  string // default for booking messages
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Kind   domain.Kind       `json:"kind,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

type bookingResponse struct {
	OK        bool   `json:"ok"`
	Mocked    bool   `json:"mocked"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/tours", h.listTours)
	s.mux.Get("/v1/tours/{slug}", h.getTour)
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Post("/v1/bookings", h.submitBooking)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemDoc(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemDoc(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(k domain.Kind) (int, string) {
	switch k {
	case domain.KindInvalidInput:
		return http.StatusBadRequest, "Invalid Input"
	case domain.KindValidationFailed:
		return http.StatusUnprocessableEntity, "Validation Failed"
	case domain.KindNotFound:
		return http.StatusNotFound, "Not Found"
	case domain.KindTimeout:
		return http.StatusGatewayTimeout, "Upstream Timeout"
	case domain.KindNetworkFailure, domain.KindBadResponse:
		return http.StatusBadGateway, "Upstream Failure"
	case domain.KindSubmissionFailed:
		return http.StatusBadGateway, "Submission Failed"
	}
	return http.StatusInternalServerError, "Internal Error"
}

func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		log.Error().Err(err).Msg("unclassified error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	status, title := statusFor(de.Kind)
	writeProblemDoc(w, problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Kind:   de.Kind,
		Detail: de.Msg,
		Errors: de.FieldMap(),
	})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listTours(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.TourFilter{Region: domain.Region(q.Get("region")), Type: domain.TourType(q.Get("type"))}
	tours, err := h.Catalog.FilterTours(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, tours)
}

func (h *Handlers) getTour(w http.ResponseWriter, r *http.Request) {
	t, err := h.Catalog.GetTourBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, t)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Catalog.ListReviewsByTourID(r.Context(), r.URL.Query().Get("tourId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCacheable(w, r, rs)
}

func (h *Handlers) submitBooking(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("lang")
	if locale == "" {
		locale = h.Locale
	}

	var p domain.BookingPayload
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeProblemDoc(w, problem{
			Type: "about:blank", Title: "Invalid Input", Status: http.StatusBadRequest,
			Kind: domain.KindInvalidInput, Detail: "invalid request body: " + err.Error(),
		})
		return
	}

	form := h.Booking.NewForm(p.TourTitle, locale)
	res, err := form.Submit(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(bookingResponse{OK: res.OK, Mocked: res.Mocked, RequestID: res.RequestID}); err != nil {
		log.Error().Err(err).Msg("failed to write booking response")
	}
}
