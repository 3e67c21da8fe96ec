package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalScenarios(t *testing.T) {
	base := DefaultScenario().WithSeatWind(WindSouth).WithRiichi(true)
	got := CanonicalScenarios(base)

	want := []struct {
		selfDraw, riichi bool
		label            string
	}{
		{false, false, LabelDamaRon},
		{true, false, LabelTsumo},
		{false, true, LabelRiichiRon},
		{true, true, LabelRiichiTsumo},
	}
	for i, w := range want {
		assert.Equal(t, w.selfDraw, got[i].SelfDraw)
		assert.Equal(t, w.riichi, got[i].Riichi)
		assert.Equal(t, w.label, got[i].Label())
		assert.Equal(t, WindSouth, got[i].SeatWind)
		assert.Equal(t, WindEast, got[i].RoundWind)
	}
	assert.Equal(t, ScenarioLabels(), []string{got[0].Label(), got[1].Label(), got[2].Label(), got[3].Label()})

	// base is a value; deriving scenarios leaves it untouched
	assert.True(t, base.Riichi)
	assert.False(t, base.SelfDraw)
}

func TestParseWind(t *testing.T) {
	for in, want := range map[string]Wind{"east": WindEast, "S": WindSouth, "3z": WindWest, " North ": WindNorth} {
		got, err := ParseWind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseWind("5z")
	assert.ErrorIs(t, err, ErrInvalidWind)
}

func TestWindNextCycles(t *testing.T) {
	assert.Equal(t, WindSouth, WindEast.Next())
	assert.Equal(t, WindEast, WindNorth.Next())
	assert.Equal(t, Tile{SuitHonor, 4}, WindNorth.Tile())
}

func TestScenarioValidate(t *testing.T) {
	require.NoError(t, DefaultScenario().Validate())
	require.NoError(t, DefaultScenario().WithSeatWind(WindNorth).WithRoundWind(WindSouth).Validate())

	assert.ErrorIs(t, Scenario{}.Validate(), ErrInvalidWind)
	assert.ErrorIs(t, DefaultScenario().WithRoundWind(5).Validate(), ErrInvalidWind)
	assert.False(t, Wind(0).Valid())
}
