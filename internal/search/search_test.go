package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
	"github.com/f3rmion/tenpai/internal/oracle/oracletest"
)

func mustHand(t *testing.T, s string) mahjong.Hand {
	t.Helper()
	tiles, err := mahjong.ParseTiles(s)
	require.NoError(t, err)
	hand, err := mahjong.NewHand(tiles)
	require.NoError(t, err)
	return hand
}

func mustTile(t *testing.T, s string) mahjong.Tile {
	t.Helper()
	tile, err := mahjong.ParseTile(s)
	require.NoError(t, err)
	return tile
}

// riichiOnEast wins only when 1z completes the hand with riichi declared.
func riichiOnEast(t *testing.T) *oracletest.Stub {
	east := mustTile(t, "1z")
	return &oracletest.Stub{ValueFunc: func(req oracle.Request) (mahjong.ScoreResult, error) {
		if req.WinTile == east && req.Scenario.Riichi {
			return oracletest.Win(2600, "Riichi"), nil
		}
		return mahjong.NotAWin("no_yaku"), nil
	}}
}

func TestRunAllScenariosWaitOnlyWithRiichi(t *testing.T) {
	stub := riichiOnEast(t)
	s := New(stub, WithWorkers(4))

	results, err := s.RunAllScenarios(context.Background(), mustHand(t, "234m456p678s11z55z"), mahjong.DefaultScenario(), nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, mahjong.ScenarioLabels(), []string{results[0].Label, results[1].Label, results[2].Label, results[3].Label})

	assert.True(t, results[0].Empty(), "dama ron")
	assert.True(t, results[1].Empty(), "tsumo")
	assert.Equal(t, []mahjong.Tile{mustTile(t, "1z")}, results[2].Waits())
	assert.Equal(t, []mahjong.Tile{mustTile(t, "1z")}, results[3].Waits())
	assert.Equal(t, 2600, results[2].Candidates[0].Result.TotalPoints)

	assert.Equal(t, 4*mahjong.NumTileTypes, stub.ValueCalls())
}

func TestSearchSendsCompleteHands(t *testing.T) {
	stub := &oracletest.Stub{}
	hand := mustHand(t, "234m456p678s11z55z")
	dora := []mahjong.Tile{mustTile(t, "3s")}

	_, err := New(stub).Search(context.Background(), hand, mahjong.DefaultScenario(), dora)
	require.NoError(t, err)

	reqs := stub.Requests()
	require.Len(t, reqs, mahjong.NumTileTypes)
	seen := make(map[mahjong.Tile]bool)
	for _, req := range reqs {
		assert.Equal(t, mahjong.CompleteFourteen, req.Hand.Kind())
		assert.True(t, req.Hand.Contains(req.WinTile))
		assert.Equal(t, dora, req.Dora)
		seen[req.WinTile] = true
	}
	assert.Len(t, seen, mahjong.NumTileTypes)
}

func TestSearchTriesFifthCopy(t *testing.T) {
	stub := &oracletest.Stub{}
	_, err := New(stub).Search(context.Background(), mustHand(t, "1111m456p678s55z1z"), mahjong.DefaultScenario(), nil)
	require.NoError(t, err)

	one := mustTile(t, "1m")
	var found bool
	for _, req := range stub.Requests() {
		if req.WinTile == one {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearchIsIdempotent(t *testing.T) {
	stub := &oracletest.Stub{ValueFunc: oracletest.WinTable(map[mahjong.Tile]int{
		mustTile(t, "1z"): 1000,
		mustTile(t, "5z"): 2000,
	})}
	s := New(stub)
	hand := mustHand(t, "234m456p678s11z55z")

	first, err := s.Search(context.Background(), hand, mahjong.DefaultScenario(), nil)
	require.NoError(t, err)
	second, err := s.Search(context.Background(), hand, mahjong.DefaultScenario(), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, mustTile(t, "5z"), first[0].Tile)
	assert.Equal(t, mustTile(t, "1z"), first[1].Tile)
}

func TestSearchRejectsCompleteHand(t *testing.T) {
	stub := &oracletest.Stub{}
	_, err := New(stub).Search(context.Background(), mustHand(t, "234m456p678s111z55z"), mahjong.DefaultScenario(), nil)
	assert.ErrorIs(t, err, mahjong.ErrInvalidHandLength)
	assert.Zero(t, stub.ValueCalls())
}

func TestSearchPropagatesFault(t *testing.T) {
	boom := errors.New("connection refused")
	stub := &oracletest.Stub{ValueFunc: func(req oracle.Request) (mahjong.ScoreResult, error) {
		return mahjong.ScoreResult{}, boom
	}}

	_, err := New(stub).RunAllScenarios(context.Background(), mustHand(t, "234m456p678s11z55z"), mahjong.DefaultScenario(), nil)
	require.Error(t, err)
	assert.True(t, oracle.IsFault(err))
	assert.ErrorIs(t, err, boom)
}

func TestSearchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&oracletest.Stub{}).RunAllScenarios(ctx, mustHand(t, "234m456p678s11z55z"), mahjong.DefaultScenario(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, oracle.IsFault(err))
}

func TestScenariosAreIsolated(t *testing.T) {
	stub := riichiOnEast(t)
	s := New(stub)
	hand := mustHand(t, "234m456p678s11z55z")
	base := mahjong.DefaultScenario().WithSeatWind(mahjong.WindSouth)

	all, err := s.RunAllScenarios(context.Background(), hand, base, nil)
	require.NoError(t, err)

	again, err := s.Search(context.Background(), hand, all[0].Scenario, nil)
	require.NoError(t, err)
	assert.Equal(t, all[0].Candidates, again)

	for _, r := range all {
		assert.Equal(t, mahjong.WindSouth, r.Scenario.SeatWind)
		assert.Equal(t, mahjong.WindEast, r.Scenario.RoundWind)
	}
	assert.Equal(t, mahjong.DefaultScenario().WithSeatWind(mahjong.WindSouth), base)
}

func TestRank(t *testing.T) {
	c := func(label string, points int) mahjong.Candidate {
		return mahjong.Candidate{Tile: mustTile(t, label), Result: oracletest.Win(points, "Tanyao")}
	}
	in := []mahjong.Candidate{c("7z", 1000), c("2p", 1000), c("9s", 3900), c("1m", 1000)}

	ranked := Rank(in)

	got := make([]string, len(ranked))
	for i, cand := range ranked {
		got[i] = cand.Tile.String()
	}
	assert.Equal(t, []string{"9s", "1m", "2p", "7z"}, got)
	assert.Equal(t, "7z", in[0].Tile.String(), "input untouched")
	assert.NotNil(t, Rank(nil))
}
