package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"apsny_travel/internal/adapters/observability"
	"apsny_travel/internal/domain"
)

// BookingService validates an inquiry and hands it to the configured sender.
type BookingService struct {
	validator *BookingValidator
	sender    domain.BookingSender
}

func NewBookingService(v *BookingValidator, s domain.BookingSender) *BookingService {
	return &BookingService{validator: v, sender: s}
}

// Validate returns the normalized payload, or a ValidationFailed error.
func (s *BookingService) Validate(p domain.BookingPayload, locale string) (domain.BookingPayload, error) {
	p = Normalize(p)
	if err := s.validator.Validate(p, locale); err != nil {
		return domain.BookingPayload{}, err
	}
	return p, nil
}

// Submit sends nothing unless the payload is valid. It never retries.
func (s *BookingService) Submit(ctx context.Context, p domain.BookingPayload, locale string) (domain.SubmissionResult, error) {
	p, err := s.Validate(p, locale)
	if err != nil {
		observability.ObserveBooking("invalid")
		return domain.SubmissionResult{}, err
	}
	res, err := s.sender.Send(ctx, p)
	if err != nil {
		observability.ObserveBooking("failed")
		log.Warn().Err(err).Str("kind", string(domain.KindOf(err))).Str("tour", p.TourTitle).Msg("booking submission failed")
		return domain.SubmissionResult{}, err
	}
	if res.Mocked {
		observability.ObserveBooking("demo")
	} else {
		observability.ObserveBooking("accepted")
	}
	return res, nil
}

type FormState int

const (
	StateIdle FormState = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s FormState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// BookingForm is one form instance on a tour page:
// Idle -> Submitting -> {Success | Failed}, Failed -> Submitting on resubmit.
// Success is terminal.
type BookingForm struct {
	svc       *BookingService
	tourTitle string
	locale    string

	mu      sync.Mutex
	state   FormState
	lastErr error
	result  domain.SubmissionResult
}

func (s *BookingService) NewForm(tourTitle, locale string) *BookingForm {
	return &BookingForm{svc: s, tourTitle: tourTitle, locale: SupportedLocale(locale)}
}

func (f *BookingForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err is the failure that moved the form to Failed, if any.
func (f *BookingForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submit fills in the form's tour title and submits. Concurrent or
// post-success submissions are rejected without touching the sender.
func (f *BookingForm) Submit(ctx context.Context, p domain.BookingPayload) (domain.SubmissionResult, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return domain.SubmissionResult{}, domain.E(domain.KindInvalidInput, "submission already in progress")
	case StateSuccess:
		res := f.result
		f.mu.Unlock()
		return res, domain.E(domain.KindInvalidInput, "booking already submitted")
	}
	f.state = StateSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	if f.tourTitle != "" {
		p.TourTitle = f.tourTitle
	}
	res, err := f.svc.Submit(ctx, p, f.locale)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateFailed
		f.lastErr = err
		return domain.SubmissionResult{}, err
	}
	f.state = StateSuccess
	f.result = res
	return res, nil
}
