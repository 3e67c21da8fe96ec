package mahjong

import (
	"fmt"
	"strings"
)

// Wind is a seat or round wind.
type Wind int

const (
	WindEast  Wind = 1
	WindSouth Wind = 2
	WindWest  Wind = 3
	WindNorth Wind = 4
)

var windNames = [...]string{"", "east", "south", "west", "north"}

func (w Wind) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Wind(%d)", int(w))
	}
	return windNames[w]
}

// Valid reports whether w is one of the four winds.
func (w Wind) Valid() bool { return w >= WindEast && w <= WindNorth }

// Tile returns the honor tile for the wind.
func (w Wind) Tile() Tile { return Tile{Suit: SuitHonor, Rank: int(w)} }

// Next cycles east → south → west → north → east.
func (w Wind) Next() Wind {
	if w >= WindNorth || w < WindEast {
		return WindEast
	}
	return w + 1
}

// ParseWind accepts a name ("east"), an initial ("e") or an honor label ("1z").
func ParseWind(s string) (Wind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for w := WindEast; w <= WindNorth; w++ {
		name := windNames[w]
		if v == name || v == name[:1] || v == w.Tile().String() {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWind, s)
}

// MarshalText encodes the wind by name.
func (w Wind) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText decodes a wind name.
func (w *Wind) UnmarshalText(text []byte) error {
	parsed, err := ParseWind(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Scenario is an immutable rule configuration handed to the oracle.
// The With* methods return modified copies.
type Scenario struct {
	SelfDraw  bool `json:"is_self_draw" yaml:"is_self_draw"`
	Riichi    bool `json:"is_ready_declared" yaml:"is_ready_declared"`
	SeatWind  Wind `json:"seat_wind" yaml:"seat_wind"`
	RoundWind Wind `json:"round_wind" yaml:"round_wind"`
}

// DefaultScenario is a discard win, no riichi, east seat in the east round.
func DefaultScenario() Scenario {
	return Scenario{SeatWind: WindEast, RoundWind: WindEast}
}

// WithSelfDraw returns a copy with the self-draw flag set to v.
func (s Scenario) WithSelfDraw(v bool) Scenario {
	s.SelfDraw = v
	return s
}

func (s Scenario) WithRiichi(v bool) Scenario {
	s.Riichi = v
	return s
}

func (s Scenario) WithSeatWind(w Wind) Scenario {
	s.SeatWind = w
	return s
}

func (s Scenario) WithRoundWind(w Wind) Scenario {
	s.RoundWind = w
	return s
}

// Validate rejects a scenario whose winds are unset or out of range.
func (s Scenario) Validate() error {
	if !s.SeatWind.Valid() {
		return fmt.Errorf("%w: seat %s", ErrInvalidWind, s.SeatWind)
	}
	if !s.RoundWind.Valid() {
		return fmt.Errorf("%w: round %s", ErrInvalidWind, s.RoundWind)
	}
	return nil
}

// Scenario labels, in canonical evaluation order.
const (
	LabelDamaRon     = "dama-ron"
	LabelTsumo       = "tsumo"
	LabelRiichiRon   = "riichi-ron"
	LabelRiichiTsumo = "riichi-tsumo"
)

// Label names the (self-draw, riichi) combination.
func (s Scenario) Label() string {
	switch {
	case s.Riichi && s.SelfDraw:
		return LabelRiichiTsumo
	case s.Riichi:
		return LabelRiichiRon
	case s.SelfDraw:
		return LabelTsumo
	default:
		return LabelDamaRon
	}
}

// CanonicalScenarios derives the four evaluated scenarios from base,
// keeping its winds: (ron), (tsumo), (riichi ron), (riichi tsumo).
func CanonicalScenarios(base Scenario) [4]Scenario {
	return [4]Scenario{
		base.WithSelfDraw(false).WithRiichi(false),
		base.WithSelfDraw(true).WithRiichi(false),
		base.WithSelfDraw(false).WithRiichi(true),
		base.WithSelfDraw(true).WithRiichi(true),
	}
}

// ScenarioLabels lists the canonical labels in evaluation order.
func ScenarioLabels() []string {
	return []string{LabelDamaRon, LabelTsumo, LabelRiichiRon, LabelRiichiTsumo}
}
