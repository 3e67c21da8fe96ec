// Package search finds every tile that completes a 13-tile hand into a
// scoring win, per rule scenario.
package search

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
)

// DefaultWorkers bounds concurrent oracle calls when no option is given.
const DefaultWorkers = 8

// Searcher runs tenpai searches against a scoring oracle.
type Searcher struct {
	oracle  oracle.ValueCalculator
	workers int
	logger  *log.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithWorkers bounds the number of in-flight oracle calls.
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Searcher backed by o.
func New(o oracle.ValueCalculator, opts ...Option) *Searcher {
	s := &Searcher{
		oracle:  o,
		workers: DefaultWorkers,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search tries all 34 tile types as the winning tile of hand under one
// scenario and returns the valid wins ranked by score. Tiles the hand
// already holds four of are still tried; the oracle alone decides.
func (s *Searcher) Search(ctx context.Context, hand mahjong.Hand, scenario mahjong.Scenario, dora []mahjong.Tile) ([]mahjong.Candidate, error) {
	results, err := s.sweep(ctx, hand, []mahjong.Scenario{scenario}, dora)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// RunAllScenarios searches hand under the four canonical scenarios
// derived from base and returns one result set per scenario, in
// canonical order. Every scenario is an independent value.
func (s *Searcher) RunAllScenarios(ctx context.Context, hand mahjong.Hand, base mahjong.Scenario, dora []mahjong.Tile) ([]mahjong.ScenarioResult, error) {
	scenarios := mahjong.CanonicalScenarios(base)
	results, err := s.sweep(ctx, hand, scenarios[:], dora)
	if err != nil {
		return nil, err
	}

	out := make([]mahjong.ScenarioResult, len(scenarios))
	for i, sc := range scenarios {
		out[i] = mahjong.ScenarioResult{
			Label:      sc.Label(),
			Scenario:   sc,
			Candidates: results[i],
		}
	}
	return out, nil
}

// sweep evaluates every (scenario, tile) pair on one bounded pool.
// Results land in fixed slots so completion order never shows.
func (s *Searcher) sweep(ctx context.Context, hand mahjong.Hand, scenarios []mahjong.Scenario, dora []mahjong.Tile) ([][]mahjong.Candidate, error) {
	if hand.Kind() != mahjong.ConcealedThirteen {
		return nil, fmt.Errorf("%w: tenpai search needs %d tiles, got %d", mahjong.ErrInvalidHandLength, mahjong.ConcealedSize, hand.Len())
	}

	domain := mahjong.AllTiles()
	dora = slices.Clone(dora)
	slots := make([][]mahjong.ScoreResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, sc := range scenarios {
		i, sc := i, sc
		// the caller may abandon the sweep between scenarios
		if gctx.Err() != nil {
			break
		}
		slots[i] = make([]mahjong.ScoreResult, len(domain))
		for j, t := range domain {
			j, t := j, t
			g.Go(func() error {
				candidate, err := hand.WithTileAdded(t)
				if err != nil {
					return err
				}
				res, err := s.oracle.HandValue(gctx, oracle.Request{
					Hand:     candidate,
					WinTile:  t,
					Scenario: sc,
					Dora:     dora,
				})
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					return oracle.AsFault(oracle.OpHandValue, fmt.Errorf("%s with %s: %w", sc.Label(), t, err))
				}
				slots[i][j] = res
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]mahjong.Candidate, len(scenarios))
	for i, results := range slots {
		var candidates []mahjong.Candidate
		for j, res := range results {
			if res.Valid {
				candidates = append(candidates, mahjong.Candidate{Tile: domain[j], Result: res})
			}
		}
		out[i] = Rank(candidates)
		s.logger.Printf("search %s %s: %d winning tiles", hand.Canonical(), scenarios[i].Label(), len(out[i]))
	}
	return out, nil
}
