package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/oracle/oracletest"
)

func newTestApp(t *testing.T, stub *oracletest.Stub, opts Options) AppModel {
	t.Helper()
	return NewApp(context.Background(), analyzer.New(stub), mahjong.DefaultScenario(), opts)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app, cmd
}

func TestAnalyzeFromInput(t *testing.T) {
	var recorded []analyzer.Outcome
	stub := &oracletest.Stub{ShantenFunc: func(mahjong.TypeCounts) (int, error) { return 2, nil }}
	m := newTestApp(t, stub, Options{Record: func(_ analyzer.Request, out analyzer.Outcome) {
		recorded = append(recorded, out)
	}})

	m.handInput.SetValue("147m 258p 369s 1234z")
	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.running)
	assert.Contains(t, m.View(), "Asking the scoring oracle")

	m, _ = update(t, m, cmd())
	assert.False(t, m.running)
	require.NotNil(t, m.outcome)
	assert.Equal(t, analyzer.KindNotReady, m.outcome.Kind)
	assert.Contains(t, m.View(), "2 shanten")
	assert.Len(t, recorded, 1)
}

func TestAnalyzeShowsInputErrors(t *testing.T) {
	m := newTestApp(t, &oracletest.Stub{}, Options{})
	m.handInput.SetValue("123m")

	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, cmd())

	assert.ErrorIs(t, m.err, mahjong.ErrInvalidHandLength)
	assert.Nil(t, m.outcome)
}

func TestStaleResultsIgnored(t *testing.T) {
	m := newTestApp(t, &oracletest.Stub{}, Options{})
	m.handInput.SetValue("147m258p369s1234z")

	m, first := update(t, m, key("enter"))
	m, second := update(t, m, key("enter"))

	m, _ = update(t, m, first())
	assert.True(t, m.running, "older result must not finish the newer run")
	m, _ = update(t, m, second())
	assert.False(t, m.running)
}

func TestScenarioToggles(t *testing.T) {
	m := newTestApp(t, &oracletest.Stub{}, Options{})

	m, _ = update(t, m, key("ctrl+s"))
	m, _ = update(t, m, key("ctrl+r"))
	assert.Equal(t, mahjong.WindSouth, m.scenario.SeatWind)
	assert.Equal(t, mahjong.WindEast, m.scenario.RoundWind)
	assert.True(t, m.scenario.Riichi)

	for _, want := range append(mahjong.ScenarioLabels(), "") {
		m, _ = update(t, m, key("ctrl+f"))
		assert.Equal(t, want, m.only)
	}
}

func TestTabMovesFocusToDora(t *testing.T) {
	m := newTestApp(t, &oracletest.Stub{}, Options{})
	m, _ = update(t, m, key("tab"))
	m, _ = update(t, m, key("3s"))

	assert.Equal(t, "", m.handInput.Value())
	assert.Equal(t, "3s", m.doraInput.Value())
}

func TestCopyCanonical(t *testing.T) {
	var copied string
	m := newTestApp(t, &oracletest.Stub{ShantenFunc: func(mahjong.TypeCounts) (int, error) { return 1, nil }}, Options{
		Copy: func(s string) error { copied = s; return nil },
	})
	m.handInput.SetValue("9s8s7s 1234z 147m 258p")
	m, cmd := update(t, m, key("enter"))
	m, _ = update(t, m, cmd())

	m, cmd = update(t, m, key("ctrl+y"))
	assert.NotNil(t, cmd)
	assert.True(t, m.copied)
	assert.Equal(t, "147m258p789s1234z", copied)
}

func TestCopyFailureShown(t *testing.T) {
	m := newTestApp(t, &oracletest.Stub{}, Options{Copy: func(string) error { return errors.New("no clipboard") }})
	m.outcome = &analyzer.Outcome{Kind: analyzer.KindNotReady}

	m, _ = update(t, m, key("ctrl+y"))
	assert.EqualError(t, m.err, "no clipboard")
}
