package discover_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolelily/hyper-files-inspector/internal/catalog"
	"github.com/nicolelily/hyper-files-inspector/internal/discover"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestWalkFindsNestedHyperFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.hyper"), 10)
	writeFile(t, filepath.Join(dir, "sub", "deep", "b.hyper"), 20)
	writeFile(t, filepath.Join(dir, "sub", "c.HYPER"), 5)
	writeFile(t, filepath.Join(dir, "ignored.csv"), 99)
	writeFile(t, filepath.Join(dir, "sub", "ignored.txt"), 1)

	result, err := discover.Walk(dir)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, dir, result.Directory)
	assert.Equal(t, 3, result.FilesFound)
	assert.Len(t, result.Files, result.FilesFound)

	names := map[string]int64{}
	for _, f := range result.Files {
		names[f.Name] = f.Size
		assert.True(t, filepath.IsAbs(f.Path))
		assert.Greater(t, f.Modified, float64(0))
	}
	assert.Equal(t, int64(10), names["a.hyper"])
	assert.Equal(t, int64(20), names["b.hyper"])
	assert.Equal(t, int64(5), names["c.HYPER"])
}

func TestWalkEmptyDirectory(t *testing.T) {
	result, err := discover.Walk(t.TempDir())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.FilesFound)
	assert.Empty(t, result.Files)
	assert.NotNil(t, result.Files) // marshals as [], not null
}

func TestWalkMissingDirectory(t *testing.T) {
	_, err := discover.Walk(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestWalkOnFileIsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.hyper")
	writeFile(t, file, 1)

	_, err := discover.Walk(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInvalidInput))
}
