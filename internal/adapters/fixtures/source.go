// Package fixtures serves the catalog from an in-process fixture set. It backs
// mock mode, where no remote catalog API is configured.
package fixtures

import (
	"context"
	"math/rand/v2"
	"time"

	"apsny_travel/internal/domain"
)

type Source struct {
	tours    []domain.Tour
	reviews  []domain.Review
	minDelay time.Duration
	maxDelay time.Duration
}

type Option func(*Source)

// WithLatency sets the simulated latency range. Zero disables it.
func WithLatency(min, max time.Duration) Option {
	return func(s *Source) {
		if max < min {
			max = min
		}
		s.minDelay, s.maxDelay = min, max
	}
}

// WithData replaces the built-in fixture set.
func WithData(tours []domain.Tour, reviews []domain.Review) Option {
	return func(s *Source) { s.tours, s.reviews = tours, reviews }
}

func New(opts ...Option) *Source {
	s := &Source{
		tours:    Tours(),
		reviews:  Reviews(),
		minDelay: 800 * time.Millisecond,
		maxDelay: 1500 * time.Millisecond,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Source) ListTours(ctx context.Context) ([]domain.Tour, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Tour, len(s.tours))
	copy(out, s.tours)
	return out, nil
}

func (s *Source) GetTourBySlug(ctx context.Context, slug string) (domain.Tour, error) {
	if err := s.wait(ctx); err != nil {
		return domain.Tour{}, err
	}
	for _, t := range s.tours {
		if t.Slug == slug {
			return t, nil
		}
	}
	return domain.Tour{}, domain.E(domain.KindNotFound, "tour not found")
}

func (s *Source) ListReviews(ctx context.Context, tourID string) ([]domain.Review, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	var out []domain.Review
	for _, r := range s.reviews {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}

// wait simulates network latency; a cancelled context surfaces as Timeout so
// callers see the same taxonomy in both modes.
func (s *Source) wait(ctx context.Context) error {
	d := s.minDelay
	if span := s.maxDelay - s.minDelay; span > 0 {
		d += rand.N(span)
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return &domain.Error{Kind: domain.KindTimeout, Msg: "request timed out", Err: ctx.Err()}
	case <-t.C:
		return nil
	}
}
