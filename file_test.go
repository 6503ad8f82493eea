package toml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile_DetectsLFEnding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\nb = 2\n"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n", f.LineEnding)
	item, found := f.Doc.Get("a", nil)
	require.True(t, found)
	assert.Equal(t, int64(1), item.(*IntegerItem).Value)
}

func TestOpenFile_DetectsCRLFEnding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\r\nb = 2\r\n"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", f.LineEnding)
}

func TestTOMLFile_SavePreservesLineEnding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\r\nb = 2\r\n"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Doc.Set("a", int64(9)))
	require.NoError(t, f.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\r\n")
	assert.NotContains(t, string(raw), "9\nb")
}

func TestTOMLFile_SaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp file after Save")
}
