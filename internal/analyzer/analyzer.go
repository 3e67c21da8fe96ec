// Package analyzer is the top-level entry point: it decides from the
// hand length whether to value a complete hand, run the tenpai search,
// or report the distance to tenpai.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
	"github.com/f3rmion/tenpai/internal/search"
)

// Kind tags an Outcome.
type Kind int

const (
	KindComplete Kind = iota + 1
	KindTenpai
	KindNotReady
)

var kindNames = [...]string{"", "complete", "tenpai", "not_ready"}

func (k Kind) String() string {
	if k < KindComplete || k > KindNotReady {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindComplete; c <= KindNotReady; c++ {
		if kindNames[c] == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", text)
}

// Request is one analysis. Tiles is the raw label sequence from tile
// detection; WinTile is only used for 14-tile hands and defaults to the
// last label.
type Request struct {
	Tiles    []string
	WinTile  string
	Dora     []string
	Scenario mahjong.Scenario
}

// Outcome is the structured result of an analysis. Exactly one of Score,
// Scenarios or Shanten carries the answer, depending on Kind.
type Outcome struct {
	Kind      Kind                     `json:"kind"`
	Hand      mahjong.Hand             `json:"hand"`
	Canonical mahjong.CanonicalForm    `json:"canonical"`
	WinTile   *mahjong.Tile            `json:"win_tile,omitempty"`
	Dora      []mahjong.Tile           `json:"dora,omitempty"`
	Scenario  mahjong.Scenario         `json:"scenario"`
	Score     *mahjong.ScoreResult     `json:"score,omitempty"`
	Shanten   int                      `json:"shanten"`
	Scenarios []mahjong.ScenarioResult `json:"scenarios,omitempty"`
}

// Analyzer dispatches hands to the oracle and the tenpai search.
type Analyzer struct {
	oracle   oracle.Oracle
	searcher *search.Searcher
	logger   *log.Logger
}

// Option configures an Analyzer.
type Option func(*options)

type options struct {
	workers int
	logger  *log.Logger
}

// WithWorkers bounds concurrent oracle calls during the tenpai search.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an Analyzer backed by o.
func New(o oracle.Oracle, opts ...Option) *Analyzer {
	cfg := options{workers: search.DefaultWorkers, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard, "", 0)
	}
	return &Analyzer{
		oracle:   o,
		searcher: search.New(o, search.WithWorkers(cfg.workers), search.WithLogger(cfg.logger)),
		logger:   cfg.logger,
	}
}

// Analyze parses the request and evaluates it. Malformed input fails
// before the oracle is consulted.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (Outcome, error) {
	hand, err := mahjong.ParseHand(req.Tiles)
	if err != nil {
		return Outcome{}, err
	}
	dora, err := mahjong.ParseLabels(req.Dora)
	if err != nil {
		return Outcome{}, fmt.Errorf("dora indicators: %w", err)
	}
	if err := req.Scenario.Validate(); err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Hand:      hand,
		Canonical: hand.Canonical(),
		Dora:      dora,
		Scenario:  req.Scenario,
	}

	defer a.logCacheStats()

	switch hand.Kind() {
	case mahjong.CompleteFourteen:
		win, err := winTile(hand, req.WinTile)
		if err != nil {
			return Outcome{}, err
		}
		return a.evaluateComplete(ctx, out, win)
	case mahjong.ConcealedThirteen:
		if req.WinTile != "" {
			a.logger.Printf("ignoring win tile %q for a %d-tile hand", req.WinTile, hand.Len())
		}
		return a.evaluateConcealed(ctx, out)
	default:
		// ParseHand only builds the two kinds above.
		return Outcome{}, fmt.Errorf("%w: %d tiles", mahjong.ErrInvalidHandLength, hand.Len())
	}
}

func (a *Analyzer) evaluateComplete(ctx context.Context, out Outcome, win mahjong.Tile) (Outcome, error) {
	res, err := a.oracle.HandValue(ctx, oracle.Request{
		Hand:     out.Hand,
		WinTile:  win,
		Scenario: out.Scenario,
		Dora:     out.Dora,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, oracle.AsFault(oracle.OpHandValue, err)
	}
	a.logger.Printf("complete %s on %s: valid=%t points=%d", out.Canonical, win, res.Valid, res.TotalPoints)

	out.Kind = KindComplete
	out.WinTile = &win
	out.Score = &res
	return out, nil
}

func (a *Analyzer) evaluateConcealed(ctx context.Context, out Outcome) (Outcome, error) {
	n, err := a.oracle.Shanten(ctx, out.Hand.Counts())
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{}, ctx.Err()
		}
		return Outcome{}, oracle.AsFault(oracle.OpShanten, err)
	}
	a.logger.Printf("shanten %s: %d", out.Canonical, n)

	out.Shanten = n
	if n > 0 {
		out.Kind = KindNotReady
		return out, nil
	}

	results, err := a.searcher.RunAllScenarios(ctx, out.Hand, out.Scenario, out.Dora)
	if err != nil {
		return Outcome{}, err
	}
	out.Kind = KindTenpai
	out.Scenarios = results
	return out, nil
}

// cacheStats is implemented by memoizing oracles.
type cacheStats interface {
	Stats() (hits, misses int64)
}

func (a *Analyzer) logCacheStats() {
	if c, ok := a.oracle.(cacheStats); ok {
		hits, misses := c.Stats()
		a.logger.Printf("oracle cache: %d hits, %d misses", hits, misses)
	}
}

// winTile resolves the winning tile of a complete hand.
func winTile(hand mahjong.Hand, label string) (mahjong.Tile, error) {
	if label == "" {
		return hand.Last(), nil
	}
	t, err := mahjong.ParseTile(label)
	if err != nil {
		return mahjong.Tile{}, fmt.Errorf("%w: %w", mahjong.ErrInvalidWinTile, err)
	}
	if !hand.Contains(t) {
		return mahjong.Tile{}, fmt.Errorf("%w: %s is not in the hand", mahjong.ErrInvalidWinTile, t)
	}
	return t, nil
}
