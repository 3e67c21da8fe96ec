package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.Save(ctx, Record{
		CreatedAt: at,
		Input:     []string{"2m", "3m", "4m"},
		Canonical: "234m",
		Kind:      "tenpai",
		Waits:     2,
		Payload:   json.RawMessage(`{"kind":"tenpai"}`),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.True(t, at.Equal(rec.CreatedAt))
	assert.Equal(t, []string{"2m", "3m", "4m"}, rec.Input)
	assert.Equal(t, "234m", rec.Canonical)
	assert.Equal(t, "tenpai", rec.Kind)
	assert.Equal(t, 2, rec.Waits)
	assert.JSONEq(t, `{"kind":"tenpai"}`, string(rec.Payload))
}

func TestGetMissing(t *testing.T) {
	s := openTemp(t)
	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentNewestFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, kind := range []string{"complete", "tenpai", "not_ready"} {
		_, err := s.Save(ctx, Record{CreatedAt: base.Add(time.Duration(i) * time.Minute), Canonical: "x", Kind: kind})
		require.NoError(t, err)
	}

	recs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "not_ready", recs[0].Kind)
	assert.Equal(t, "tenpai", recs[1].Kind)
	assert.JSONEq(t, `{}`, string(recs[0].Payload))
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), Record{Canonical: "1z", Kind: "complete"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	rec, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "complete", rec.Kind)
}
