// Package oracletest provides a call-counting stub oracle for tests.
package oracletest

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
)

// Stub implements oracle.Oracle with pluggable behavior. With no funcs
// set, every hand is "no_yaku" and every hand is tenpai.
type Stub struct {
	ValueFunc   func(req oracle.Request) (mahjong.ScoreResult, error)
	ShantenFunc func(counts mahjong.TypeCounts) (int, error)

	valueCalls   atomic.Int64
	shantenCalls atomic.Int64

	mu       sync.Mutex
	requests []oracle.Request
}

var _ oracle.Oracle = (*Stub)(nil)

// HandValue records the request and delegates to ValueFunc.
func (s *Stub) HandValue(ctx context.Context, req oracle.Request) (mahjong.ScoreResult, error) {
	s.valueCalls.Add(1)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return mahjong.ScoreResult{}, err
	}
	if s.ValueFunc == nil {
		return mahjong.NotAWin("no_yaku"), nil
	}
	return s.ValueFunc(req)
}

// Shanten delegates to ShantenFunc.
func (s *Stub) Shanten(ctx context.Context, counts mahjong.TypeCounts) (int, error) {
	s.shantenCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.ShantenFunc == nil {
		return 0, nil
	}
	return s.ShantenFunc(counts)
}

// ValueCalls returns how many HandValue calls were made.
func (s *Stub) ValueCalls() int { return int(s.valueCalls.Load()) }

// ShantenCalls returns how many Shanten calls were made.
func (s *Stub) ShantenCalls() int { return int(s.shantenCalls.Load()) }

// Requests returns the recorded HandValue requests in arrival order.
func (s *Stub) Requests() []oracle.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Win builds a valid result worth points with a single yaku.
func Win(points int, yaku string) mahjong.ScoreResult {
	return mahjong.ScoreResult{
		Valid:       true,
		TotalPoints: points,
		Han:         1,
		Fu:          30,
		Yaku:        []mahjong.Yaku{{Name: yaku, Han: 1}},
		FuBreakdown: []string{"20 base"},
	}
}

// WinTable returns a ValueFunc that wins with the given points when the
// winning tile is a key of table, and reports no_yaku otherwise.
func WinTable(table map[mahjong.Tile]int) func(oracle.Request) (mahjong.ScoreResult, error) {
	return func(req oracle.Request) (mahjong.ScoreResult, error) {
		if points, ok := table[req.WinTile]; ok {
			return Win(points, "Tanyao"), nil
		}
		return mahjong.NotAWin("no_yaku"), nil
	}
}
