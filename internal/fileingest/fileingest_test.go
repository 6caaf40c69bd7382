package fileingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCSVFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.csv", "a.CSV", "notes.txt", "nested/c.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ID\n1\n"), 0o644))
	}

	files, err := DiscoverCSVFiles(context.Background(), dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.CSV", "b.csv", "c.csv"}, names)
	assert.EqualValues(t, 5, files[0].Size)
}

func TestDiscoverCSVFiles_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, os.WriteFile(path, []byte("ID\n"), 0o644))

	files, err := DiscoverCSVFiles(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0].Path)
}

func TestDiscoverCSVFiles_Missing(t *testing.T) {
	_, err := DiscoverCSVFiles(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverCSVFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("ID\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := DiscoverCSVFiles(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
