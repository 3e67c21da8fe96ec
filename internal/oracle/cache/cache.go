// Package cache memoizes scoring oracle answers in memory.
package cache

import (
	"context"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
)

// DefaultSize is used when a non-positive size is requested.
const DefaultSize = 4096

// Oracle wraps another oracle with LRU caches. Only successful answers
// are cached; faults always go back to the caller and are retried by
// the next call. Cached results share their slices with other readers
// and must not be modified.
type Oracle struct {
	next    oracle.Oracle
	values  *lru.Cache[string, mahjong.ScoreResult]
	shanten *lru.Cache[mahjong.TypeCounts, int]

	hits   atomic.Int64
	misses atomic.Int64
}

var _ oracle.Oracle = (*Oracle)(nil)

// New wraps next with caches holding up to size entries each.
func New(next oracle.Oracle, size int) (*Oracle, error) {
	if size <= 0 {
		size = DefaultSize
	}
	values, err := lru.New[string, mahjong.ScoreResult](size)
	if err != nil {
		return nil, err
	}
	shanten, err := lru.New[mahjong.TypeCounts, int](size)
	if err != nil {
		return nil, err
	}
	return &Oracle{next: next, values: values, shanten: shanten}, nil
}

// HandValue returns a cached result or asks the wrapped oracle.
func (o *Oracle) HandValue(ctx context.Context, req oracle.Request) (mahjong.ScoreResult, error) {
	key := req.Key()
	if res, ok := o.values.Get(key); ok {
		o.hits.Add(1)
		return res, nil
	}
	o.misses.Add(1)

	res, err := o.next.HandValue(ctx, req)
	if err != nil {
		return mahjong.ScoreResult{}, err
	}
	o.values.Add(key, res)
	return res, nil
}

// Shanten returns a cached shanten number or asks the wrapped oracle.
func (o *Oracle) Shanten(ctx context.Context, counts mahjong.TypeCounts) (int, error) {
	if n, ok := o.shanten.Get(counts); ok {
		o.hits.Add(1)
		return n, nil
	}
	o.misses.Add(1)

	n, err := o.next.Shanten(ctx, counts)
	if err != nil {
		return 0, err
	}
	o.shanten.Add(counts, n)
	return n, nil
}

// Stats reports cache hits and misses across both caches.
func (o *Oracle) Stats() (hits, misses int64) {
	return o.hits.Load(), o.misses.Load()
}
