package mahjong

import (
	"fmt"
)

// Suit is one of the four tile families, in canonical order.
type Suit int

const (
	SuitMan   Suit = iota // Characters - marker "m"
	SuitPin               // Circles - marker "p"
	SuitSou               // Bamboo - marker "s"
	SuitHonor             // Winds and dragons - marker "z"
)

// Suits lists every suit in canonical order.
var Suits = [...]Suit{SuitMan, SuitPin, SuitSou, SuitHonor}

// NumTileTypes is the size of the candidate tile domain.
const NumTileTypes = 34

var suitMarkers = [...]byte{'m', 'p', 's', 'z'}

var suitNames = [...]string{"Man", "Pin", "Sou", "Honor"}

// Marker returns the single-letter suit marker used in tile labels.
func (s Suit) Marker() byte {
	if !s.valid() {
		return '?'
	}
	return suitMarkers[s]
}

// MaxRank returns the highest rank a tile of this suit may carry.
func (s Suit) MaxRank() int {
	if s == SuitHonor {
		return 7
	}
	return 9
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

func (s Suit) valid() bool {
	return s >= SuitMan && s <= SuitHonor
}

// suitFromMarker maps a label marker to its suit.
func suitFromMarker(b byte) (Suit, bool) {
	for i, m := range suitMarkers {
		if m == b {
			return Suit(i), true
		}
	}
	return 0, false
}

// Tile is a tile type. Two tiles with the same suit and rank are equal;
// physical copies only matter to the oracle's 136 encoding.
type Tile struct {
	Suit Suit
	Rank int
}

// NewTile validates suit and rank.
func NewTile(suit Suit, rank int) (Tile, error) {
	if !suit.valid() {
		return Tile{}, fmt.Errorf("%w: unknown suit %d", ErrInvalidTile, int(suit))
	}
	if rank < 1 || rank > suit.MaxRank() {
		return Tile{}, fmt.Errorf("%w: rank %d out of range for %s", ErrInvalidTile, rank, suit)
	}
	return Tile{Suit: suit, Rank: rank}, nil
}

// Index returns the tile-type index in [0, 34): man 0-8, pin 9-17, sou 18-26, honors 27-33.
func (t Tile) Index() int {
	return int(t.Suit)*9 + t.Rank - 1
}

// TileFromIndex is the inverse of Index. It panics on an index outside [0, 34).
func TileFromIndex(i int) Tile {
	if i < 0 || i >= NumTileTypes {
		panic(fmt.Sprintf("mahjong: tile index %d out of range", i))
	}
	return Tile{Suit: Suit(i / 9), Rank: i%9 + 1}
}

// AllTiles returns the full candidate domain in canonical order:
// man 1-9, pin 1-9, sou 1-9, honors 1-7.
func AllTiles() []Tile {
	tiles := make([]Tile, NumTileTypes)
	for i := range tiles {
		tiles[i] = TileFromIndex(i)
	}
	return tiles
}

// CompareTiles orders tiles canonically.
func CompareTiles(a, b Tile) int {
	return a.Index() - b.Index()
}

// String returns the tile label, e.g. "5p" or "1z".
func (t Tile) String() string {
	return fmt.Sprintf("%d%c", t.Rank, t.Suit.Marker())
}

// MarshalText encodes the tile as its label.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tile label.
func (t *Tile) UnmarshalText(text []byte) error {
	parsed, err := ParseTile(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var honorNames = [...]string{"East", "South", "West", "North", "White Dragon", "Green Dragon", "Red Dragon"}

// Name returns a readable name such as "Pin 5" or "East".
func (t Tile) Name() string {
	if t.Suit == SuitHonor && t.Rank >= 1 && t.Rank <= 7 {
		return honorNames[t.Rank-1]
	}
	return fmt.Sprintf("%s %d", t.Suit, t.Rank)
}

// Unicode Mahjong Tiles block starts.
const (
	glyphEast = 0x1F000
	glyphMan1 = 0x1F007
	glyphSou1 = 0x1F010
	glyphPin1 = 0x1F019
)

// honor rank → offset from East in the Unicode block (white/green/red are stored reversed)
var honorGlyphOffset = [...]int{0, 1, 2, 3, 6, 5, 4}

// Glyph returns the Unicode mahjong tile for t.
func (t Tile) Glyph() string {
	switch t.Suit {
	case SuitMan:
		return string(rune(glyphMan1 + t.Rank - 1))
	case SuitPin:
		return string(rune(glyphPin1 + t.Rank - 1))
	case SuitSou:
		return string(rune(glyphSou1 + t.Rank - 1))
	case SuitHonor:
		if t.Rank >= 1 && t.Rank <= 7 {
			return string(rune(glyphEast + honorGlyphOffset[t.Rank-1]))
		}
	}
	return "?"
}
