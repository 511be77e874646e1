package domain

import "context"

// TourSource is the backend view of the catalog. Implementations return every
// tour they know, active or not; visibility rules are applied by the caller.
type TourSource interface {
	ListTours(ctx context.Context) ([]Tour, error)
	GetTourBySlug(ctx context.Context, slug string) (Tour, error)
	ListReviews(ctx context.Context, tourID string) ([]Review, error)
}

type BookingSender interface {
	Send(ctx context.Context, p BookingPayload) (SubmissionResult, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
