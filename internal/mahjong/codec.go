package mahjong

import (
	"fmt"
	"slices"
	"strings"
)

// CanonicalForm is the one-line notation the scoring oracle accepts:
// suit blocks in m, p, s, z order, ranks ascending inside each block.
type CanonicalForm string

// Width selects an oracle array encoding.
type Width int

const (
	Width34  Width = 34  // tile-type counts, used for shanten
	Width136 Width = 136 // physical tile ids, used for hand value
)

// TypeCounts holds how many tiles of each type a hand contains.
type TypeCounts [NumTileTypes]int

// ParseTile parses a single label such as "5p" or "7z".
func ParseTile(label string) (Tile, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	if len(s) != 2 {
		return Tile{}, fmt.Errorf("%w: %q", ErrInvalidTile, label)
	}
	suit, ok := suitFromMarker(s[1])
	if !ok {
		return Tile{}, fmt.Errorf("%w: %q has unknown suit marker", ErrInvalidTile, label)
	}
	if s[0] < '0' || s[0] > '9' {
		return Tile{}, fmt.Errorf("%w: %q has no rank", ErrInvalidTile, label)
	}
	t, err := NewTile(suit, int(s[0]-'0'))
	if err != nil {
		return Tile{}, fmt.Errorf("%w: %q", ErrInvalidTile, label)
	}
	return t, nil
}

// ParseTiles parses one-line notation. Digits accumulate until a suit
// marker closes the block, so "123m55z", "1m2m3m5z5z" and "1m 2m, 3m"
// are all accepted. Order is preserved.
func ParseTiles(s string) ([]Tile, error) {
	var tiles []Tile
	var pending []int

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			pending = append(pending, int(c-'0'))
		case c == ' ' || c == ',' || c == '\t' || c == '\n':
			if len(pending) > 0 {
				return nil, fmt.Errorf("%w: digits without suit marker in %q", ErrInvalidTile, s)
			}
		default:
			suit, ok := suitFromMarker(lower(c))
			if !ok {
				return nil, fmt.Errorf("%w: unknown suit marker %q in %q", ErrInvalidTile, c, s)
			}
			if len(pending) == 0 {
				return nil, fmt.Errorf("%w: suit marker %q without rank in %q", ErrInvalidTile, c, s)
			}
			for _, rank := range pending {
				t, err := NewTile(suit, rank)
				if err != nil {
					return nil, fmt.Errorf("%w: %d%c", ErrInvalidTile, rank, suit.Marker())
				}
				tiles = append(tiles, t)
			}
			pending = pending[:0]
		}
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("%w: digits without suit marker in %q", ErrInvalidTile, s)
	}
	return tiles, nil
}

// ParseLabels parses a label sequence as produced by tile detection.
// Each element may be a single label or a compact block.
func ParseLabels(labels []string) ([]Tile, error) {
	tiles := make([]Tile, 0, len(labels))
	for _, label := range labels {
		parsed, err := ParseTiles(label)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, parsed...)
	}
	return tiles, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// groupBySuit buckets ranks per suit and sorts each bucket.
func groupBySuit(tiles []Tile) [len(Suits)][]int {
	var groups [len(Suits)][]int
	for _, t := range tiles {
		groups[t.Suit] = append(groups[t.Suit], t.Rank)
	}
	for _, g := range groups {
		slices.Sort(g)
	}
	return groups
}

// Canonicalize renders tiles in canonical one-line notation. Any two
// permutations of the same multiset produce the same form.
func Canonicalize(tiles []Tile) CanonicalForm {
	var sb strings.Builder
	groups := groupBySuit(tiles)
	for _, suit := range Suits {
		ranks := groups[suit]
		if len(ranks) == 0 {
			continue
		}
		for _, r := range ranks {
			sb.WriteByte(byte('0' + r))
		}
		sb.WriteByte(suit.Marker())
	}
	return CanonicalForm(sb.String())
}

// SortTiles returns a canonically ordered copy of tiles.
func SortTiles(tiles []Tile) []Tile {
	sorted := slices.Clone(tiles)
	slices.SortFunc(sorted, CompareTiles)
	return sorted
}

// Counts returns per-type counts for tiles.
func Counts(tiles []Tile) TypeCounts {
	var c TypeCounts
	for _, t := range tiles {
		c[t.Index()]++
	}
	return c
}

// ToOracleArray converts tiles into the oracle's array encoding.
// Width34 yields the type-count array. Width136 yields sorted physical
// ids (type*4 + copy), assigning copies in order of appearance; a fifth
// copy of any type cannot be encoded and returns ErrCopiesExhausted.
func ToOracleArray(tiles []Tile, width Width) ([]int, error) {
	switch width {
	case Width34:
		c := Counts(tiles)
		return c[:], nil
	case Width136:
		var used TypeCounts
		ids := make([]int, 0, len(tiles))
		for _, t := range SortTiles(tiles) {
			idx := t.Index()
			if used[idx] >= 4 {
				return nil, fmt.Errorf("%w: %s", ErrCopiesExhausted, t)
			}
			ids = append(ids, idx*4+used[idx])
			used[idx]++
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unsupported oracle array width %d", int(width))
	}
}
