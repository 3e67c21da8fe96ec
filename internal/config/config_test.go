package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/tenpai/internal/mahjong"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  seat_wind: south
oracle:
  timeout: 750ms
search:
  workers: 3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "south", cfg.Rules.SeatWind)
	assert.Equal(t, "east", cfg.Rules.RoundWind)
	assert.Equal(t, Default().Oracle.URL, cfg.Oracle.URL)
	assert.Equal(t, 3, cfg.Search.Workers)
	assert.True(t, cfg.History.Enabled)

	d, err := cfg.OracleTimeout()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, d)

	sc, err := cfg.Scenario()
	require.NoError(t, err)
	assert.Equal(t, mahjong.WindSouth, sc.SeatWind)
	assert.Equal(t, mahjong.WindEast, sc.RoundWind)
	assert.False(t, sc.Riichi)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":    "rules: [",
		"bad wind":    "rules:\n  round_wind: up\n",
		"bad timeout": "oracle:\n  timeout: soon\n",
		"no workers":  "search:\n  workers: 0\n",
		"empty url":   "oracle:\n  url: \"\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("dir", "history.db"), cfg.HistoryPath("dir"))

	cfg.History.Path = "/tmp/h.db"
	assert.Equal(t, "/tmp/h.db", cfg.HistoryPath("dir"))
}
