package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle"
	"github.com/f3rmion/tenpai/internal/oracle/oracletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, riichi bool) oracle.Request {
	t.Helper()
	tiles, err := mahjong.ParseTiles("234m456p678s555z11z")
	require.NoError(t, err)
	hand, err := mahjong.NewHand(tiles)
	require.NoError(t, err)
	return oracle.Request{Hand: hand, WinTile: hand.Last(), Scenario: mahjong.DefaultScenario().WithRiichi(riichi)}
}

func TestHandValueCached(t *testing.T) {
	stub := &oracletest.Stub{ValueFunc: func(oracle.Request) (mahjong.ScoreResult, error) {
		return oracletest.Win(2000, "Yakuhai"), nil
	}}
	c, err := New(stub, 8)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := c.HandValue(ctx, request(t, false))
	require.NoError(t, err)
	second, err := c.HandValue(ctx, request(t, false))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.ValueCalls())

	_, err = c.HandValue(ctx, request(t, true))
	require.NoError(t, err)
	assert.Equal(t, 2, stub.ValueCalls())

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestFaultsAreNotCached(t *testing.T) {
	fail := true
	stub := &oracletest.Stub{ValueFunc: func(oracle.Request) (mahjong.ScoreResult, error) {
		if fail {
			return mahjong.ScoreResult{}, oracle.AsFault(oracle.OpHandValue, errors.New("down"))
		}
		return mahjong.NotAWin("no_yaku"), nil
	}}
	c, err := New(stub, 8)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.HandValue(ctx, request(t, false))
	assert.True(t, oracle.IsFault(err))

	fail = false
	res, err := c.HandValue(ctx, request(t, false))
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, 2, stub.ValueCalls())
}

func TestShantenCached(t *testing.T) {
	stub := &oracletest.Stub{ShantenFunc: func(mahjong.TypeCounts) (int, error) { return 1, nil }}
	c, err := New(stub, 0)
	require.NoError(t, err)

	counts := request(t, false).Hand.Counts()
	for i := 0; i < 3; i++ {
		n, err := c.Shanten(context.Background(), counts)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, 1, stub.ShantenCalls())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}
