package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Defaults()
	cfg.RegistryPath = "/data/venv_registry.json"
	cfg.ProbeTimeout = 30 * time.Second
	cfg.ScanRoots = []string{"/work", "/scratch"}

	require.NoError(t, WriteConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded fileConfig
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	require.Equal(t, "/data/venv_registry.json", loaded.RegistryPath)
	require.Equal(t, "30s", loaded.ProbeTimeout)
	require.Equal(t, []string{"/work", "/scratch"}, loaded.ScanRoots)
	require.Equal(t, cfg.BackupRetention, loaded.BackupRetention)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded fileConfig
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	require.Equal(t, "10s", loaded.ProbeTimeout)
	require.Equal(t, 10, loaded.BackupRetention)
}

func TestWriteConfigReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale: true\n"), 0o644))

	require.NoError(t, WriteConfig(path, Defaults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "stale")

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
