package search

import (
	"cmp"
	"slices"

	"github.com/f3rmion/tenpai/internal/mahjong"
)

// Rank orders candidates by total points, highest first. Equal scores
// fall back to canonical tile order. The input is not modified.
func Rank(candidates []mahjong.Candidate) []mahjong.Candidate {
	ranked := slices.Clone(candidates)
	if ranked == nil {
		ranked = []mahjong.Candidate{}
	}
	slices.SortStableFunc(ranked, compareCandidates)
	return ranked
}

func compareCandidates(a, b mahjong.Candidate) int {
	if c := cmp.Compare(b.Result.TotalPoints, a.Result.TotalPoints); c != 0 {
		return c
	}
	return mahjong.CompareTiles(a.Tile, b.Tile)
}
