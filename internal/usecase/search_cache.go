package usecase

import (
	"context"
	"time"
)

// JobCache stores student job browsing results. Implementations fail open:
// a miss or error only means the store is queried.
//
// Listings are keyed by a generation counter. Invalidation bumps it, so a
// listing read before a job write and stored after it lands under a key no
// reader asks for again.
type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Generation(ctx context.Context, key string) (int64, error)
	Bump(ctx context.Context, key string) (int64, error)
}
