package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"apsny_travel/internal/domain"
)

const activeToursKey = "tours:active"

// sharedLoadTimeout bounds a collapsed source call that no single caller owns.
const sharedLoadTimeout = 30 * time.Second

// CatalogService applies the catalog visibility rules on top of whichever
// TourSource was selected at startup. Cache is optional.
type CatalogService struct {
	src      domain.TourSource
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

func NewCatalogService(src domain.TourSource, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{src: src, cache: c, cacheTTL: ttl}
}

// ListTours returns every active tour in source order, or fails as a whole.
func (s *CatalogService) ListTours(ctx context.Context) ([]domain.Tour, error) {
	v, err := s.cached(ctx, activeToursKey, new([]domain.Tour), func(ctx context.Context) (any, error) {
		all, err := s.src.ListTours(ctx)
		if err != nil {
			return nil, err
		}
		active := make([]domain.Tour, 0, len(all))
		for _, t := range all {
			if t.IsActive {
				active = append(active, t)
			}
		}
		return active, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.Tour)), nil
}

// FilterTours narrows the active catalog by region and/or type.
func (s *CatalogService) FilterTours(ctx context.Context, f domain.TourFilter) ([]domain.Tour, error) {
	if f.Region != "" && !f.Region.Valid() {
		return nil, domain.E(domain.KindInvalidInput, fmt.Sprintf("unknown region %q", f.Region))
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, domain.E(domain.KindInvalidInput, fmt.Sprintf("unknown tour type %q", f.Type))
	}
	all, err := s.ListTours(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, t := range all {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetTourBySlug treats an inactive tour exactly like a missing one.
func (s *CatalogService) GetTourBySlug(ctx context.Context, slug string) (domain.Tour, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Tour{}, domain.E(domain.KindInvalidInput, "missing tour slug")
	}
	v, err := s.cached(ctx, "tour:"+slug, new(domain.Tour), func(ctx context.Context) (any, error) {
		t, err := s.src.GetTourBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !t.IsActive || t.Slug != slug {
			return nil, &domain.Error{Kind: domain.KindNotFound, Msg: "tour not found"}
		}
		return t, nil
	})
	if err != nil {
		return domain.Tour{}, err
	}
	return v.(domain.Tour), nil
}

// ListReviewsByTourID returns the tour's reviews newest first; none is not an error.
func (s *CatalogService) ListReviewsByTourID(ctx context.Context, tourID string) ([]domain.Review, error) {
	tourID = strings.TrimSpace(tourID)
	if tourID == "" {
		return nil, domain.E(domain.KindInvalidInput, "missing tour id")
	}
	v, err := s.cached(ctx, "reviews:"+tourID, new([]domain.Review), func(ctx context.Context) (any, error) {
		rs, err := s.src.ListReviews(ctx, tourID)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Review, 0, len(rs))
		for _, r := range rs {
			if r.TourID == tourID {
				out = append(out, r)
			}
		}
		SortReviews(out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]domain.Review)), nil
}

// SortReviews orders by date descending; equal dates fall back to id.
func SortReviews(rs []domain.Review) {
	slices.SortStableFunc(rs, func(a, b domain.Review) int {
		ta, tb := reviewTime(a.Date), reviewTime(b.Date)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// reviewTime accepts ISO dates and RFC 3339 timestamps; anything else sorts last.
func reviewTime(s string) time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Warm prefetches every active tour and its reviews so the first visitors hit
// the cache. Failures are logged and joined; they never abort the others.
func (s *CatalogService) Warm(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	tours, err := s.ListTours(ctx)
	if err != nil {
		return fmt.Errorf("warm tour list: %w", err)
	}

	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, t := range tours {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(t domain.Tour) {
			defer wg.Done()
			defer sem.Release(1)

			_, err1 := s.GetTourBySlug(ctx, t.Slug)
			_, err2 := s.ListReviewsByTourID(ctx, t.ID)
			if err := errors.Join(err1, err2); err != nil {
				log.Warn().Str("slug", t.Slug).Err(err).Msg("warm failed")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(t)
	}
	wg.Wait()
	log.Info().Int("tours", len(tours)).Int("failed", len(errs)).Msg("catalog warm-up completed")
	return errors.Join(errs...)
}

// cached is cache-aside with concurrent misses for one key collapsed into a
// single source call. dst must be a pointer to the value type load returns.
// The shared call is detached from any one caller; each caller stops waiting
// on its own context.
func (s *CatalogService) cached(ctx context.Context, key string, dst any, load func(context.Context) (any, error)) (any, error) {
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, dst)
		if err != nil {
			log.Debug().Str("key", key).Err(err).Msg("cache get failed")
			// unreadable entry: evict so the next set starts clean
			if derr := s.cache.Del(ctx, key); derr != nil {
				log.Debug().Str("key", key).Err(derr).Msg("cache del failed")
			}
		}
		if ok {
			return deref(dst), nil
		}
	}
	ch := s.sf.DoChan(key, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		v, err := load(lctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.cacheTTL > 0 {
			if err := s.cache.Set(lctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
				log.Debug().Str("key", key).Err(err).Msg("cache set failed")
			}
		}
		return v, nil
	})
	select {
	case <-ctx.Done():
		return nil, &domain.Error{Kind: domain.KindTimeout, Msg: "request timed out", Err: ctx.Err()}
	case res := <-ch:
		return res.Val, res.Err
	}
}

func deref(p any) any {
	switch v := p.(type) {
	case *[]domain.Tour:
		return *v
	case *[]domain.Review:
		return *v
	case *domain.Tour:
		return *v
	}
	return nil
}
