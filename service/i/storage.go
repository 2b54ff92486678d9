package i

import "context"

// LayoutCache stores encoded layouts by a deterministic key.
type LayoutCache interface {
	// GetOrCreate returns the cached layout for key, calling build at most once across
	// concurrent callers when it is missing.
	GetOrCreate(ctx context.Context, key string, build func() ([]byte, error)) ([]byte, error)
}

// SortedQueue is a capped set of members ordered by score.
type SortedQueue interface {
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error
	// Latest returns up to n members with the highest scores, highest first.
	Latest(ctx context.Context, queueKey string, n int64) ([]string, error)
}
