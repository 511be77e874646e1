package fixtures_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"apsny_travel/internal/adapters/fixtures"
	"apsny_travel/internal/domain"
)

func TestSource_GetTourBySlug(t *testing.T) {
	s := fixtures.New(fixtures.WithLatency(0, 0))

	tr, err := s.GetTourBySlug(context.Background(), "lake-ritsa")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if tr.PriceFrom != 4500 || tr.ID != "1" {
		t.Fatalf("unexpected tour: %+v", tr)
	}

	_, err = s.GetTourBySlug(context.Background(), "atlantis")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSource_ListReviews_UnknownTourIsEmpty(t *testing.T) {
	s := fixtures.New(fixtures.WithLatency(0, 0))
	rs, err := s.ListReviews(context.Background(), "999")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("expected no reviews, got %d", len(rs))
	}
}

func TestSource_ListTours_ReturnsCopy(t *testing.T) {
	s := fixtures.New(fixtures.WithLatency(0, 0))
	a, _ := s.ListTours(context.Background())
	a[0].Slug = "mutated"
	b, _ := s.ListTours(context.Background())
	if b[0].Slug != "lake-ritsa" {
		t.Fatalf("fixture set was mutated through a returned slice")
	}
}

func TestSource_LatencyHonoursContext(t *testing.T) {
	s := fixtures.New(fixtures.WithLatency(time.Second, time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := s.ListTours(ctx)
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("wait did not stop on cancellation")
	}
}
