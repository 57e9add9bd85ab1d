package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.save")

	payload := []byte(`{"seed":12345,"generationType":"SimplexNoise"}`)

	require.NoError(t, SaveSnapshot(path, payload))

	restored, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestSaveSnapshotCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "world.save")

	require.NoError(t, SaveSnapshot(path, []byte("data")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.save"))
	assert.Error(t, err)
}
