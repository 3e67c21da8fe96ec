package oracle

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultMatching(t *testing.T) {
	err := AsFault(OpHandValue, errors.New("boom"))
	assert.True(t, IsFault(err))
	assert.ErrorIs(t, err, ErrFault)

	var f *Fault
	require.ErrorAs(t, err, &f)
	assert.Equal(t, OpHandValue, f.Op)
	assert.False(t, f.Timeout())

	wrapped := fmt.Errorf("search: %w", err)
	assert.Same(t, wrapped, AsFault(OpShanten, wrapped))
	assert.Nil(t, AsFault(OpShanten, nil))
}

func TestFaultTimeout(t *testing.T) {
	err := AsFault(OpShanten, fmt.Errorf("post: %w", context.DeadlineExceeded))

	var f *Fault
	require.ErrorAs(t, err, &f)
	assert.True(t, f.Timeout())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestKeyDistinguishesScenarios(t *testing.T) {
	tiles, err := mahjong.ParseTiles("123m456p789s11z222z")
	require.NoError(t, err)
	hand, err := mahjong.NewHand(tiles)
	require.NoError(t, err)

	base := Request{Hand: hand, WinTile: hand.Last(), Scenario: mahjong.DefaultScenario()}
	riichi := base
	riichi.Scenario = base.Scenario.WithRiichi(true)

	assert.NotEqual(t, base.Key(), riichi.Key())

	reordered, err := mahjong.ParseTiles("222z11z789s456p123m")
	require.NoError(t, err)
	other, err := mahjong.NewHand(reordered)
	require.NoError(t, err)
	same := base
	same.Hand = other
	assert.Equal(t, base.Key(), same.Key())
}
