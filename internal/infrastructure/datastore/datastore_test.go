package datastore

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learningjournal/core/internal/infrastructure/config"
)

func testStorageConfig() config.StorageConfig {
	return config.StorageConfig{
		DataDir:         "data",
		ReflectionsFile: "reflections.json",
		ProjectsFile:    "projects.json",
		FileMode:        "0640",
	}
}

func TestNewWithFsCreatesDataDir(t *testing.T) {
	fs := afero.NewMemMapFs()

	store, err := NewWithFs(fs, testStorageConfig())
	require.NoError(t, err)

	exists, err := afero.DirExists(fs, "data")
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Equal(t, "data", store.Dir())
	assert.Equal(t, os.FileMode(0o640), store.FileMode())
	assert.Equal(t, "data/reflections.json", store.ReflectionsPath())
	assert.Equal(t, "data/projects.json", store.ProjectsPath())
}

func TestNewWithFsRejectsFileAsDataDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data", []byte("x"), 0o644))

	_, err := NewWithFs(fs, testStorageConfig())
	assert.Error(t, err)
}

func TestNewWithFsRejectsBadFileMode(t *testing.T) {
	cfg := testStorageConfig()
	cfg.FileMode = "abc"

	_, err := NewWithFs(afero.NewMemMapFs(), cfg)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewWithFs(fs, testStorageConfig())
	require.NoError(t, err)

	require.NoError(t, store.HealthCheck())
	require.NoError(t, store.Ping())

	entries, err := afero.ReadDir(fs, "data")
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file must be removed")

	readOnly := &Store{Fs: afero.NewReadOnlyFs(fs), config: testStorageConfig(), perm: 0o640}
	assert.Error(t, readOnly.HealthCheck())
}

func TestGetStorageInfo(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewWithFs(fs, testStorageConfig())
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, store.ReflectionsPath(), []byte("[]\n"), 0o640))

	info := store.GetStorageInfo()
	assert.Equal(t, "data", info["data_dir"])
	assert.Equal(t, 1, info["files"])
	assert.Equal(t, int64(3), info["total_bytes"])
}
