package mahjong

import (
	"encoding/json"
	"fmt"
	"slices"
)

// HandKind is decided once, when a Hand is constructed.
type HandKind int

const (
	ConcealedThirteen HandKind = iota + 1 // waiting hand, no winning tile yet
	CompleteFourteen                      // includes the winning tile
)

// Valid hand sizes.
const (
	ConcealedSize = 13
	CompleteSize  = 14
)

func (k HandKind) String() string {
	switch k {
	case ConcealedThirteen:
		return "concealed-13"
	case CompleteFourteen:
		return "complete-14"
	default:
		return "invalid"
	}
}

// Hand is an immutable tile sequence of length 13 or 14. Input order is
// kept; only the multiset matters for evaluation.
type Hand struct {
	tiles []Tile
	kind  HandKind
}

// NewHand builds a hand from parsed tiles.
func NewHand(tiles []Tile) (Hand, error) {
	var kind HandKind
	switch len(tiles) {
	case ConcealedSize:
		kind = ConcealedThirteen
	case CompleteSize:
		kind = CompleteFourteen
	default:
		return Hand{}, fmt.Errorf("%w: got %d tiles, want %d or %d", ErrInvalidHandLength, len(tiles), ConcealedSize, CompleteSize)
	}
	return Hand{tiles: slices.Clone(tiles), kind: kind}, nil
}

// ParseHand parses raw labels and builds a hand. Tile errors win over
// length errors.
func ParseHand(labels []string) (Hand, error) {
	tiles, err := ParseLabels(labels)
	if err != nil {
		return Hand{}, err
	}
	return NewHand(tiles)
}

// Kind reports which hand variant this is. The zero Hand reports 0.
func (h Hand) Kind() HandKind { return h.kind }

// Len returns the number of tiles.
func (h Hand) Len() int { return len(h.tiles) }

// Tiles returns a copy of the tiles in input order.
func (h Hand) Tiles() []Tile { return slices.Clone(h.tiles) }

// Last returns the most recently added tile.
func (h Hand) Last() Tile { return h.tiles[len(h.tiles)-1] }

// Contains reports whether the hand holds at least one t.
func (h Hand) Contains(t Tile) bool { return slices.Contains(h.tiles, t) }

// Canonical returns the canonical one-line form.
func (h Hand) Canonical() CanonicalForm { return Canonicalize(h.tiles) }

// Counts returns per-type counts.
func (h Hand) Counts() TypeCounts { return Counts(h.tiles) }

// OracleArray encodes the hand for the oracle.
func (h Hand) OracleArray(width Width) ([]int, error) { return ToOracleArray(h.tiles, width) }

// WithTileAdded returns a new complete hand with t appended. The receiver
// must be a 13-tile hand.
func (h Hand) WithTileAdded(t Tile) (Hand, error) {
	if h.kind != ConcealedThirteen {
		return Hand{}, fmt.Errorf("%w: can only add a tile to a %d-tile hand, have %d", ErrInvalidHandLength, ConcealedSize, len(h.tiles))
	}
	tiles := make([]Tile, 0, CompleteSize)
	tiles = append(tiles, h.tiles...)
	tiles = append(tiles, t)
	return Hand{tiles: tiles, kind: CompleteFourteen}, nil
}

func (h Hand) String() string { return string(h.Canonical()) }

// MarshalJSON encodes the hand as its label list in input order.
func (h Hand) MarshalJSON() ([]byte, error) {
	if h.tiles == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.tiles)
}

// UnmarshalJSON decodes a label list and re-validates the hand.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var tiles []Tile
	if err := json.Unmarshal(data, &tiles); err != nil {
		return err
	}
	if len(tiles) == 0 {
		*h = Hand{}
		return nil
	}
	parsed, err := NewHand(tiles)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
