package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_FetchReadsOnlyCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trades_20250101.csv"),
		[]byte("symbol,position_type,entry_time\nTCS,LONG,2025-01-01T09:30:00\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
		[]byte("not a trade log"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0o755))

	batches, err := NewLocal(dir).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, batches, 1)
	assert.Equal(t, "trades_20250101.csv", batches[0].Filename)
	require.NoError(t, batches[0].Err)
	require.Len(t, batches[0].Rows, 1)
	assert.Equal(t, "TCS", batches[0].Rows[0]["symbol"])
}

func TestLocal_FetchMissingDirectory(t *testing.T) {
	_, err := NewLocal(filepath.Join(t.TempDir(), "nope")).Fetch(context.Background())
	require.Error(t, err)
}

func TestLocal_BadFileIsolatedInBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.csv"),
		[]byte("symbol\nTCS\n"), 0o644))
	// Broken quoting makes this file unparseable.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
		[]byte("symbol,pnl\n\"TCS,1\nx\"y,2\n"), 0o644))

	batches, err := NewLocal(dir).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 2)

	byName := map[string]int{}
	for i, b := range batches {
		byName[b.Filename] = i
	}
	assert.Error(t, batches[byName["bad.csv"]].Err)
	assert.NoError(t, batches[byName["good.csv"]].Err)
	assert.Len(t, batches[byName["good.csv"]].Rows, 1)
}

func TestLocal_UppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TRADES.CSV"),
		[]byte("symbol\nTCS\n"), 0o644))

	batches, err := NewLocal(dir).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, batches, 1)
}
