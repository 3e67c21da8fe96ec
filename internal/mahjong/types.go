// Package mahjong provides the tile codec and the value types shared by
// the oracle, the tenpai search and the presentation layers.
package mahjong

// Yaku is one scoring pattern reported by the oracle.
type Yaku struct {
	Name string `json:"name"`
	Han  int    `json:"han"`
}

// ScoreResult is the oracle's verdict for one complete hand under one
// scenario. Valid=false means "not a winning hand", which is an ordinary
// outcome rather than a failure.
type ScoreResult struct {
	Valid       bool     `json:"is_valid"`
	TotalPoints int      `json:"total_points"`
	Han         int      `json:"han"`
	Fu          int      `json:"fu"`
	Level       string   `json:"level,omitempty"`  // mangan, haneman, ...
	Yaku        []Yaku   `json:"yaku,omitempty"`   // oracle order
	FuBreakdown []string `json:"fu_breakdown,omitempty"`
	Reason      string   `json:"reason,omitempty"` // why the hand is not a win
}

// NotAWin builds an invalid result carrying the oracle's reason.
func NotAWin(reason string) ScoreResult {
	return ScoreResult{Reason: reason}
}

// Candidate is a winning tile found by the tenpai search.
type Candidate struct {
	Tile   Tile        `json:"tile"`
	Result ScoreResult `json:"result"`
}

// ScenarioResult is the ranked candidate set for one scenario. An empty
// Candidates slice means no tile completes a scoring hand.
type ScenarioResult struct {
	Label      string      `json:"label"`
	Scenario   Scenario    `json:"scenario"`
	Candidates []Candidate `json:"candidates"`
}

// Empty reports whether the search found nothing.
func (r ScenarioResult) Empty() bool { return len(r.Candidates) == 0 }

// Waits returns the winning tiles in ranked order.
func (r ScenarioResult) Waits() []Tile {
	tiles := make([]Tile, len(r.Candidates))
	for i, c := range r.Candidates {
		tiles[i] = c.Tile
	}
	return tiles
}
