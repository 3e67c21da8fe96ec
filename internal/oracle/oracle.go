// Package oracle defines the scoring oracle boundary: the external
// collaborator that values complete hands and computes shanten.
package oracle

import (
	"context"
	"strconv"
	"strings"

	"github.com/f3rmion/tenpai/internal/mahjong"
)

// Request asks for the value of a complete hand.
type Request struct {
	Hand     mahjong.Hand
	WinTile  mahjong.Tile
	Scenario mahjong.Scenario
	Dora     []mahjong.Tile
}

// Key identifies a request by content. Two requests with the same key
// always receive the same answer from a deterministic oracle.
func (r Request) Key() string {
	var sb strings.Builder
	sb.WriteString(string(r.Hand.Canonical()))
	sb.WriteByte('|')
	sb.WriteString(r.WinTile.String())
	sb.WriteByte('|')
	sb.WriteString(string(mahjong.Canonicalize(r.Dora)))
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(r.Scenario.SelfDraw))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatBool(r.Scenario.Riichi))
	sb.WriteByte(',')
	sb.WriteString(r.Scenario.SeatWind.String())
	sb.WriteByte(',')
	sb.WriteString(r.Scenario.RoundWind.String())
	return sb.String()
}

// ValueCalculator values complete hands. A hand without a valid yaku is
// reported as a result with Valid=false and a nil error; errors are
// reserved for operational failures.
type ValueCalculator interface {
	HandValue(ctx context.Context, req Request) (mahjong.ScoreResult, error)
}

// ShantenCalculator computes the distance to tenpai; 0 means ready.
type ShantenCalculator interface {
	Shanten(ctx context.Context, counts mahjong.TypeCounts) (int, error)
}

// Oracle is the full collaborator.
type Oracle interface {
	ValueCalculator
	ShantenCalculator
}
